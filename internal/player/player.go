// Package player identifies players and holds their persistent profile.
package player

import (
	"fmt"
	"strings"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
)

// ID scopes a chat user to the guild they play in. Profiles are per guild.
type ID struct {
	Guild string
	User  string
}

func NewID(guild, user string) ID { return ID{Guild: guild, User: user} }

func (id ID) String() string { return id.Guild + ":" + id.User }

// ParseID is the inverse of ID.String.
func ParseID(s string) (ID, error) {
	guild, user, ok := strings.Cut(s, ":")
	if !ok || user == "" {
		return ID{}, fmt.Errorf("malformed player id %q", s)
	}
	return ID{Guild: guild, User: user}, nil
}

// Profile is the persistent record of a player.
type Profile struct {
	ID           ID             `json:"-"`
	Balance      fish.Money     `json:"balance"`
	TotalCatches int            `json:"total_catches"`
	Species      []string       `json:"species"`
	Inventory    gear.Inventory `json:"inventory"`
}

func NewProfile(id ID) Profile {
	return Profile{ID: id, Inventory: gear.DefaultInventory()}
}

func (p *Profile) HasCaught(species string) bool {
	for _, s := range p.Species {
		if strings.EqualFold(s, species) {
			return true
		}
	}
	return false
}

// RecordCatch counts a catch and reports whether the species is new to the
// player's collection.
func (p *Profile) RecordCatch(species string) bool {
	p.TotalCatches++
	if p.HasCaught(species) {
		return false
	}
	p.Species = append(p.Species, species)
	return true
}
