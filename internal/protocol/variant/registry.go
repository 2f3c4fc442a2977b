package variant

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/danmuck/sigmactl/internal/protocol/header"
	"github.com/rs/zerolog/log"
)

const (
	NameADAU14xx = "adau14xx"
	NameADAU1x01 = "adau1x01"

	Default = NameADAU14xx
)

var ErrUnknownVariant = errors.New("variant: unknown variant")

var generators = map[string]header.Generator{
	NameADAU14xx: ADAU14xx{},
	NameADAU1x01: ADAU1x01{},
}

// aliases map chip part numbers onto their family.
var aliases = map[string]string{
	"adau1452": NameADAU14xx,
	"adau1467": NameADAU14xx,
	"adau1701": NameADAU1x01,
	"adau1401": NameADAU1x01,
}

// Lookup returns the generator registered under name or one of its chip aliases.
func Lookup(name string) (header.Generator, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if family, ok := aliases[key]; ok {
		key = family
	}
	g, ok := generators[key]
	if !ok {
		log.Error().Str("variant", name).Msg("variant.Lookup unknown variant")
		return nil, fmt.Errorf("%w %q; known variants are %s", ErrUnknownVariant, name, strings.Join(Names(), ", "))
	}
	log.Debug().Str("variant", key).Msg("variant.Lookup ok")
	return g, nil
}

// Names lists the registered family names in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
