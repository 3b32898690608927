package parser

import "github.com/dtnitsch/cauldron/pkg/markup"

// Tier names the fallback strategy that produced the candidate elements.
type Tier int

const (
	TierNone Tier = iota
	// TierBody uses the direct children of the body element.
	TierBody
	// TierRoot uses the direct children of the html element.
	TierRoot
	// TierDeep uses every recognized block element at any depth.
	TierDeep
)

var tierOrder = [...]Tier{TierBody, TierRoot, TierDeep}

func (t Tier) String() string {
	switch t {
	case TierBody:
		return "body"
	case TierRoot:
		return "root"
	case TierDeep:
		return "deep"
	}
	return "none"
}

// blockTags are the element names the classifier recognizes.
var blockTags = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"p": {}, "pre": {}, "blockquote": {}, "ul": {}, "ol": {}, "img": {},
}

// IsBlockTag reports whether tag maps to a Block.
func IsBlockTag(tag string) bool {
	_, ok := blockTags[tag]
	return ok
}

// Locate returns the candidate elements of the first tier that has any.
func Locate(root markup.Node) (Tier, []markup.Node) {
	for _, t := range tierOrder {
		if c := Candidates(root, t); len(c) > 0 {
			return t, c
		}
	}
	return TierNone, nil
}

// Candidates evaluates a single tier against root.
func Candidates(root markup.Node, tier Tier) []markup.Node {
	if root == nil {
		return nil
	}
	switch tier {
	case TierBody:
		return wrapperChildren(root, "body")
	case TierRoot:
		return wrapperChildren(root, "html")
	case TierDeep:
		return markup.FindAll(root, func(n markup.Node) bool { return IsBlockTag(n.Tag()) })
	}
	return nil
}

func wrapperChildren(root markup.Node, tag string) []markup.Node {
	wrapper, ok := markup.Find(root, markup.HasTag(tag))
	if !ok {
		return nil
	}
	return markup.ElementChildren(wrapper)
}
