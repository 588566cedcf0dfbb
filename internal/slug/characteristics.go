// Package slug turns uploaded image bytes into a reproducible slug persona
// and the text-to-image prompt that renders it.
package slug

import (
	"crypto/md5"
	"encoding/binary"
	"strings"
)

// Colors, Moods and Features are indexed by the image seed. Their order is
// part of the public behaviour: reordering changes every user's slug.
var (
	Colors = []string{
		"pale yellow spotted",
		"brown striped",
		"dark brown with black markings",
		"orange-brown with red tints",
		"gray speckled",
		"cream colored with dark spots",
		"olive green tinted",
		"reddish-brown mottled",
	}

	Moods = []string{
		"cheerful looking",
		"contemplative",
		"friendly",
		"curious",
		"serene",
		"alert",
	}

	Features = []string{
		"with prominent eye stalks",
		"with an elegant shell pattern",
		"with delicate antennae",
		"with a glossy appearance",
		"with textured skin",
		"with distinctive markings",
	}
)

// Characteristics is the color, mood and feature picked for one image.
type Characteristics struct {
	Color   string `json:"color"`
	Mood    string `json:"mood"`
	Feature string `json:"feature"`
}

// String renders the characteristics as "color, mood, feature".
func (c Characteristics) String() string {
	return strings.Join([]string{c.Color, c.Mood, c.Feature}, ", ")
}

// Seed returns the first 32 bits of the MD5 digest of data, the same value
// as parsing the first eight hex characters of the digest.
func Seed(data []byte) uint32 {
	sum := md5.Sum(data)
	return binary.BigEndian.Uint32(sum[:4])
}

// FromSeed selects characteristics from a seed. The divisors pull three
// loosely independent indices out of a single value.
func FromSeed(h uint32) Characteristics {
	return Characteristics{
		Color:   Colors[h%uint32(len(Colors))],
		Mood:    Moods[(h/100)%uint32(len(Moods))],
		Feature: Features[(h/10000)%uint32(len(Features))],
	}
}

// Analyze derives the characteristics of an image from its raw bytes. Any
// input, including an empty slice, yields a valid result.
func Analyze(data []byte) Characteristics {
	return FromSeed(Seed(data))
}
