package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// HostAliases maps short names onto well known Etherpad installations.
var HostAliases = map[string]string{
	"local":  "http://localhost:9001",
	"public": "http://beta.etherpad.org",
}

// ResolveHost turns an alias, a bare port or an absolute URL into the base URL of an instance.
func ResolveHost(hostOrAlias string) (*url.URL, error) {
	host := strings.TrimSpace(hostOrAlias)
	if host == "" {
		return nil, fmt.Errorf("no etherpad url given")
	}
	if aliased, ok := HostAliases[strings.TrimPrefix(host, ":")]; ok {
		host = aliased
	} else if port, err := strconv.Atoi(host); err == nil {
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%d is not a valid port", port)
		}
		host = "http://localhost:" + strconv.Itoa(port)
	}

	parsedUrl, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid url: %w", hostOrAlias, err)
	}
	if parsedUrl.Scheme != "http" && parsedUrl.Scheme != "https" {
		return nil, fmt.Errorf("%s is not a valid url: scheme must be http or https", hostOrAlias)
	}
	if parsedUrl.Host == "" {
		return nil, fmt.Errorf("%s is not a valid url: missing host", hostOrAlias)
	}
	parsedUrl.Path = strings.TrimSuffix(parsedUrl.Path, "/")
	parsedUrl.RawQuery = ""
	parsedUrl.Fragment = ""
	return parsedUrl, nil
}
