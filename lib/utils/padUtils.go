package utils

import (
	"regexp"
	"strings"
)

// GroupPadSeparator joins a group id and a pad name into a group pad id.
const GroupPadSeparator = "$"

var groupIDRegex = regexp.MustCompile(`^g\.[^$]+`)
var readOnlyIDRegex = regexp.MustCompile(`^r\.\w+`)

func IsValidGroupID(groupID string) bool {
	return groupIDRegex.MatchString(groupID) && !strings.Contains(groupID, GroupPadSeparator)
}

func IsReadOnlyID(id string) bool {
	return readOnlyIDRegex.MatchString(id)
}

// GroupIDOf returns the group prefix of a pad id, or "" for a pad outside any group.
func GroupIDOf(padID string) string {
	if !strings.Contains(padID, GroupPadSeparator) {
		return ""
	}
	return groupIDRegex.FindString(padID)
}

// DegroupPadID strips a leading "g.<token>$" from padID. Bare names are returned unchanged.
func DegroupPadID(padID string) string {
	groupID := GroupIDOf(padID)
	if groupID == "" {
		return padID
	}
	return strings.TrimPrefix(padID[len(groupID):], GroupPadSeparator)
}

// ComposePadID builds the effective pad id for name inside groupID. An empty
// groupID yields the bare name. A name that already carries a group prefix is
// degrouped first so the result never contains two prefixes.
func ComposePadID(groupID, name string) string {
	if groupID == "" {
		return name
	}
	return groupID + GroupPadSeparator + DegroupPadID(name)
}
