package response

import (
	"strings"

	"github.com/munnerz/goautoneg"

	"github.com/conduit-lang/hypermedia/pkg/uber"
	"github.com/conduit-lang/hypermedia/pkg/web/form"
)

// Format is a representation the renderer can produce
type Format int

const (
	// FormatUBER is the UBER JSON document
	FormatUBER Format = iota
	// FormatJSON is the UBER document served as plain JSON
	FormatJSON
	// FormatHTML is an HTML page of forms
	FormatHTML
)

// MediaType returns the media type of the format
func (f Format) MediaType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html"
	default:
		return uber.MediaType
	}
}

// ContentType returns the Content-Type header value written for the format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatHTML:
		return form.MediaType
	default:
		return uber.MediaType
	}
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHTML:
		return "html"
	default:
		return "uber"
	}
}

// Negotiate picks the offer the Accept header prefers. Ties go to the
// offer listed first, and an empty header accepts the first offer.
// It returns false when no offer is acceptable.
func Negotiate(accept string, offers ...Format) (Format, bool) {
	if len(offers) == 0 {
		return 0, false
	}
	if strings.TrimSpace(accept) == "" {
		return offers[0], true
	}

	ranges := goautoneg.ParseAccept(accept)

	best, bestQ := offers[0], 0.0
	for _, offer := range offers {
		if q := quality(offer.MediaType(), ranges); q > bestQ {
			best, bestQ = offer, q
		}
	}
	return best, bestQ > 0
}

// quality returns the q value of the most specific range matching
// mediaType. A more specific range with q=0 excludes the type even when
// a wildcard accepts it.
func quality(mediaType string, ranges []goautoneg.Accept) float64 {
	typ, subtype, _ := strings.Cut(mediaType, "/")

	q, specificity := 0.0, -1
	for _, r := range ranges {
		var s int
		switch {
		case strings.EqualFold(r.Type, typ) && strings.EqualFold(r.SubType, subtype):
			s = 2
		case strings.EqualFold(r.Type, typ) && r.SubType == "*":
			s = 1
		case r.Type == "*" && r.SubType == "*":
			s = 0
		default:
			continue
		}
		if s > specificity {
			q, specificity = r.Q, s
		}
	}
	return q
}
