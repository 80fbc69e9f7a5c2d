package usecase

import (
	"hash/fnv"
	"strings"
)

type DescriptionOptions struct {
	ProductName string   `json:"product_name"`
	Tone        string   `json:"tone"`
	Length      string   `json:"length"`
	Audience    string   `json:"audience"`
	Features    []string `json:"features"`
	Benefits    []string `json:"benefits"`
}

var toneIntros = map[string][]string{
	"professional": {
		"Introducing the {name}, a premium solution designed for optimal performance.",
		"The {name} offers exceptional quality and reliability for discerning customers.",
		"Experience superior craftsmanship with the {name}, meticulously designed for excellence.",
	},
	"friendly": {
		"Meet the {name}, your new favorite baby essential!",
		"We're excited to introduce you to the {name} - you're going to love it!",
		"Say hello to the {name}, the perfect addition to your baby's collection!",
	},
	"enthusiastic": {
		"The AMAZING {name} is here to revolutionize your baby care routine!",
		"Get ready to be BLOWN AWAY by the incredible {name}!",
		"We're THRILLED to present the game-changing {name} that parents everywhere are raving about!",
	},
	"formal": {
		"We present the {name}, manufactured to the highest standards of quality.",
		"{name} represents our commitment to excellence in baby product manufacturing.",
		"It is our pleasure to introduce the {name}, a product of significant research and development.",
	},
	"casual": {
		"Check out our cool new {name} - it's a total game-changer!",
		"The {name} is super easy to use and your baby will love it!",
		"Our {name} is pretty awesome - just saying!",
	},
}

var audiencePhrases = map[string][]string{
	"general": {
		"Perfect for everyday use.",
		"Designed with all families in mind.",
		"A must-have for any household with children.",
	},
	"parents": {
		"Designed by parents, for parents.",
		"Making parenting just a little bit easier.",
		"Because we understand what parents need.",
	},
	"children": {
		"Kids absolutely love it!",
		"Designed to delight children while providing what they need.",
		"Fun and functional - a winning combination for children.",
	},
	"premium": {
		"Crafted for those who appreciate the finer things.",
		"Luxury meets functionality in this premium product.",
		"An investment in quality that discerning customers will appreciate.",
	},
	"budget": {
		"Quality doesn't have to break the bank.",
		"Affordable without compromising on what matters.",
		"Great value for budget-conscious families.",
	},
}

const (
	bodyShort  = ""
	bodyMedium = " Our {name} combines quality, functionality, and style to provide an exceptional experience for you and your baby."
	bodyLong   = bodyMedium + " We've paid attention to every detail to ensure this product exceeds your expectations and makes your life easier. With durability and comfort in mind, we've created something that will stand the test of time."
	bodyOther  = " Our {name} combines quality, functionality, and style."
)

// GenerateDescription builds a product description from canned phrases. The
// phrase variant depends only on the product name, so the same options give
// the same text.
func GenerateDescription(o DescriptionOptions) string {
	name := strings.TrimSpace(o.ProductName)
	intros, ok := toneIntros[o.Tone]
	if !ok {
		intros = toneIntros["professional"]
	}
	phrases, ok := audiencePhrases[o.Audience]
	if !ok {
		phrases = audiencePhrases["general"]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(name)))
	seed := h.Sum32()

	var body string
	switch o.Length {
	case "short":
		body = bodyShort
	case "medium":
		body = bodyMedium
	case "long":
		body = bodyLong
	default:
		body = bodyOther
	}

	var b strings.Builder
	b.WriteString(intros[seed%uint32(len(intros))])
	b.WriteString(" ")
	b.WriteString(phrases[(seed/7)%uint32(len(phrases))])
	b.WriteString(body)
	writeBullets(&b, "Key Features", o.Features)
	writeBullets(&b, "Benefits", o.Benefits)
	return strings.ReplaceAll(b.String(), "{name}", name)
}

func writeBullets(b *strings.Builder, title string, items []string) {
	n := 0
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if n == 0 {
			b.WriteString("\n\n" + title + ":")
		}
		b.WriteString("\n• " + it)
		n++
	}
}
