package model

import (
	"strconv"

	"github.com/Geb0/OpenMapGenerator/internal/geo"
	"github.com/Geb0/OpenMapGenerator/internal/util"
)

// Raw form or server payloads arrive as flat string maps. Each recognized
// field runs through exactly one normalization rule; unknown keys are
// ignored and missing keys leave the zero value in place. Malformed numeric
// input normalizes to zero rather than failing, so required-field checks
// belong to the caller.

func fieldInt(fields map[string]string, key string) int {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func fieldCoord(fields map[string]string, key string) string {
	raw, ok := fields[key]
	if !ok {
		return geo.Format(0)
	}
	return geo.Normalize(raw)
}

func fieldText(fields map[string]string, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	return util.NormalizeText(raw)
}

func fieldBool(fields map[string]string, key string) bool {
	return fields[key] == "1" || fields[key] == "true"
}
