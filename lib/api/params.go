package api

import (
	"strconv"
)

// Params holds the parameters of one call. Absent keys are not sent at all,
// which the server treats differently from an empty value.
type Params map[string]string

func (p Params) Set(key, value string) Params {
	p[key] = value
	return p
}

func (p Params) SetInt(key string, value int) Params {
	p[key] = strconv.Itoa(value)
	return p
}

func (p Params) SetInt64(key string, value int64) Params {
	p[key] = strconv.FormatInt(value, 10)
	return p
}

func (p Params) SetBool(key string, value bool) Params {
	p[key] = strconv.FormatBool(value)
	return p
}

func (p Params) SetOptional(key string, value *string) Params {
	if value != nil {
		p[key] = *value
	}
	return p
}

func (p Params) SetOptionalInt(key string, value *int) Params {
	if value != nil {
		p.SetInt(key, *value)
	}
	return p
}

func (p Params) SetOptionalInt64(key string, value *int64) Params {
	if value != nil {
		p.SetInt64(key, *value)
	}
	return p
}

func (p Params) SetOptionalBool(key string, value *bool) Params {
	if value != nil {
		p.SetBool(key, *value)
	}
	return p
}
