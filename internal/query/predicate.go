// Package query builds store-independent filter predicates for article and
// comment lookups. A predicate is a tree of And/Or nodes over Cond leaves;
// each store adapter decides how to evaluate the leaves.
package query

// Field names a leaf condition the stores know how to evaluate
type Field int

const (
	// AuthorDemo matches records whose author has the demo flag set to Value (bool)
	AuthorDemo Field = iota + 1
	// AuthorUsername matches records whose author's username equals Value (string)
	AuthorUsername
	// TagName matches articles with at least one tag named Value (string)
	TagName
	// FavoritedBy matches articles favorited by the user named Value (string)
	FavoritedBy
	// AuthorFollowedBy matches articles whose author is followed by the user id Value (int64)
	AuthorFollowedBy
	// ArticleSlug matches comments on the article with slug Value (string)
	ArticleSlug
)

func (f Field) String() string {
	switch f {
	case AuthorDemo:
		return "author.demo"
	case AuthorUsername:
		return "author.username"
	case TagName:
		return "tags.name"
	case FavoritedBy:
		return "favoritedBy.username"
	case AuthorFollowedBy:
		return "author.followedBy.id"
	case ArticleSlug:
		return "article.slug"
	default:
		return "unknown"
	}
}

// Predicate is one of And, Or or Cond
type Predicate interface {
	predicate()
}

// And holds when every child holds. An empty And always holds.
type And []Predicate

// Or holds when any child holds. An empty Or never holds.
type Or []Predicate

// Cond is a single field comparison
type Cond struct {
	Field Field
	Value interface{}
}

func (And) predicate()  {}
func (Or) predicate()   {}
func (Cond) predicate() {}

// Eq returns the leaf Field = value
func Eq(field Field, value interface{}) Cond {
	return Cond{Field: field, Value: value}
}

// Eval evaluates p, delegating leaves to match
func Eval(p Predicate, match func(Cond) bool) bool {
	switch n := p.(type) {
	case nil:
		return true
	case And:
		for _, child := range n {
			if !Eval(child, match) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range n {
			if Eval(child, match) {
				return true
			}
		}
		return false
	case Cond:
		return match(n)
	default:
		return false
	}
}

// Leaves returns every Cond in p in depth-first order
func Leaves(p Predicate) []Cond {
	var out []Cond
	var walk func(Predicate)
	walk = func(p Predicate) {
		switch n := p.(type) {
		case And:
			for _, child := range n {
				walk(child)
			}
		case Or:
			for _, child := range n {
				walk(child)
			}
		case Cond:
			out = append(out, n)
		}
	}
	walk(p)
	return out
}
