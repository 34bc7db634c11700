// Package sample is a small people service that exposes its data as
// UBER resources and its operations as action descriptors.
package sample

import (
	"fmt"
	"slices"
)

// Gender of a person
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// EnumValues lists every gender
func (Gender) EnumValues() []any {
	return []any{GenderMale, GenderFemale}
}

// Sport a person practices
type Sport string

const (
	SportSurfing     Sport = "SURFING"
	SportHiking      Sport = "HIKING"
	SportSkiing      Sport = "SKIING"
	SportRiding      Sport = "RIDING"
	SportBiking      Sport = "BIKING"
	SportDancing     Sport = "DANCING"
	SportStealing    Sport = "STEALING"
	SportSmoking     Sport = "SMOKING"
	SportDragonQuest Sport = "DRAGON_QUEST"
)

// EnumValues lists every sport
func (Sport) EnumValues() []any {
	return []any{
		SportSurfing, SportHiking, SportSkiing, SportRiding, SportBiking,
		SportDancing, SportStealing, SportSmoking, SportDragonQuest,
	}
}

// Gadget a person carries
type Gadget string

const (
	GadgetRing           Gadget = "RING"
	GadgetSword          Gadget = "SWORD"
	GadgetMithrilShirt   Gadget = "MITHRIL_SHIRT"
	GadgetLembasBread    Gadget = "LEMBAS_BREAD"
	GadgetEarendilsLight Gadget = "EARENDILS_LIGHT"
	GadgetHornOfGondor   Gadget = "HORN_OF_GONDOR"
)

// EnumValues lists every gadget
func (Gadget) EnumValues() []any {
	return []any{
		GadgetRing, GadgetSword, GadgetMithrilShirt,
		GadgetLembasBread, GadgetEarendilsLight, GadgetHornOfGondor,
	}
}

// Person is the record served by the sample service
type Person struct {
	ID        int64    `json:"id"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Gender    Gender   `json:"gender"`
	Sports    []Sport  `json:"sports"`
	Gadgets   []Gadget `json:"gadgets"`
	Details   []string `json:"details"`
}

func (p Person) clone() Person {
	p.Sports = slices.Clone(p.Sports)
	p.Gadgets = slices.Clone(p.Gadgets)
	p.Details = slices.Clone(p.Details)
	return p
}

// ParseGender parses one of the Gender values
func ParseGender(s string) (Gender, error) {
	return parseEnum[Gender](s)
}

// ParseSports parses a list of Sport values
func ParseSports(values []string) ([]Sport, error) {
	return parseEnums[Sport](values)
}

// ParseGadgets parses a list of Gadget values
func ParseGadgets(values []string) ([]Gadget, error) {
	return parseEnums[Gadget](values)
}

type enum interface {
	~string
	EnumValues() []any
}

func parseEnum[E enum](s string) (E, error) {
	var zero E
	for _, v := range zero.EnumValues() {
		if e := v.(E); string(e) == s {
			return e, nil
		}
	}
	return zero, fmt.Errorf("invalid %T value %q", zero, s)
}

func parseEnums[E enum](values []string) ([]E, error) {
	out := make([]E, 0, len(values))
	for _, s := range values {
		e, err := parseEnum[E](s)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
