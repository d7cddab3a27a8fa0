package collectible

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/parodee/goapi/domain"
)

// RawContract accepts either a plain address string or an object
// carrying an address field
type RawContract struct {
	Address domain.Address
}

func (c *RawContract) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		c.Address = domain.Address(str)
		return nil
	}
	var obj struct {
		Address domain.Address `json:"address"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	c.Address = obj.Address
	return nil
}

// RawTrait carries every attribute field variant seen upstream
type RawTrait struct {
	TraitType  *domain.FlexString `json:"trait_type"`
	Name       *domain.FlexString `json:"name"`
	Key        *domain.FlexString `json:"key"`
	Value      *domain.FlexString `json:"value"`
	TraitValue *domain.FlexString `json:"trait_value"`
}

// Category resolves the trait category through its field variants
func (t RawTrait) Category() string {
	for _, f := range []*domain.FlexString{t.TraitType, t.Name, t.Key} {
		if f != nil && *f != "" {
			return f.String()
		}
	}
	return ""
}

// Val resolves the trait value through its field variants
func (t RawTrait) Val() string {
	for _, f := range []*domain.FlexString{t.Value, t.TraitValue} {
		if f != nil && *f != "" {
			return f.String()
		}
	}
	return ""
}

type rawMetadata struct {
	Attributes []RawTrait `json:"attributes"`
}

// RawItem is the heterogeneous wire shape of an upstream record.
// Every field is optional; Normalize resolves the variants.
type RawItem struct {
	Identifier      *domain.FlexString `json:"identifier"`
	Id              *domain.FlexString `json:"id"`
	Name            *string            `json:"name"`
	Description     *string            `json:"description"`
	ImageUrl        *string            `json:"image_url"`
	DisplayImageUrl *string            `json:"display_image_url"`
	Collection      *string            `json:"collection"`
	Contract        *RawContract       `json:"contract"`
	Traits          []RawTrait         `json:"traits"`
	Attributes      []RawTrait         `json:"attributes"`
	Metadata        *rawMetadata       `json:"metadata"`
}

// ResolvedId resolves the record id through its field variants
func (r RawItem) ResolvedId() string {
	if r.Identifier != nil && *r.Identifier != "" {
		return r.Identifier.String()
	}
	if r.Id != nil && *r.Id != "" {
		return r.Id.String()
	}
	return ""
}

func (r RawItem) rawTraits() []RawTrait {
	if r.Traits != nil {
		return r.Traits
	}
	if r.Attributes != nil {
		return r.Attributes
	}
	if r.Metadata != nil && r.Metadata.Attributes != nil {
		return r.Metadata.Attributes
	}
	return nil
}

// Normalize resolves a raw record into the canonical shape. A record
// without any id cannot be addressed and is rejected; everything else
// degrades to a placeholder. Pure, never panics.
func (r RawItem) Normalize(info CollectionInfo) (Collectible, error) {
	id := r.ResolvedId()
	if id == "" {
		return Collectible{}, domain.ErrMissingIdentifier
	}

	name := ""
	if r.Name != nil {
		name = strings.TrimSpace(*r.Name)
	}
	if name == "" {
		name = "#" + id
	}

	image := ""
	if r.ImageUrl != nil && *r.ImageUrl != "" {
		image = *r.ImageUrl
	} else if r.DisplayImageUrl != nil {
		image = *r.DisplayImageUrl
	}

	description := ""
	if r.Description != nil {
		description = *r.Description
	}

	slug := info.Slug
	if r.Collection != nil && *r.Collection != "" {
		slug = *r.Collection
	}

	contract := info.Contract
	if r.Contract != nil && !r.Contract.Address.IsEmpty() {
		contract = r.Contract.Address
	}

	traits := []Trait{}
	for _, rt := range r.rawTraits() {
		cat := rt.Category()
		if cat == "" {
			continue
		}
		traits = append(traits, Trait{
			Name:  capitalize(cat),
			Value: rt.Val(),
		})
	}

	return Collectible{
		Id:              id,
		Name:            name,
		ImageUrl:        image,
		Description:     description,
		Traits:          traits,
		CollectionSlug:  slug,
		ContractAddress: contract.ToLower(),
		Chain:           info.Chain,
	}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
