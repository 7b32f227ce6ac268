package query

import (
	"regexp"
	"sort"
	"strings"

	"rhcatalog/internal/model"
	"rhcatalog/internal/store"
)

// Service exposes read-only queries over one immutable catalog snapshot.
// Every method returns fresh slices and never mutates the snapshot, so any
// number of readers may call concurrently.
type Service struct {
	cat *model.Catalog
	st  store.Store
}

// New wraps a catalog. st may be nil; ByASIN then scans the product list.
func New(cat *model.Catalog, st store.Store) *Service {
	return &Service{cat: cat, st: st}
}

func (s *Service) Catalog() *model.Catalog { return s.cat }

// ByASIN looks a product up by identifier.
func (s *Service) ByASIN(asin string) (*model.ProductRecord, bool) {
	if s.st != nil {
		return s.st.Get(asin)
	}
	for _, p := range s.cat.Products {
		if p.ASIN == asin {
			return p, true
		}
	}
	return nil, false
}

// ByCategory resolves a slug: primary bucket, then precomputed secondary
// bucket, then the on-the-fly rule table.
func (s *Service) ByCategory(slug string) []*model.ProductRecord {
	if bucket, ok := s.cat.Categories[slug]; ok {
		return bucket
	}
	if bucket, ok := s.cat.SEOCategories[slug]; ok {
		return bucket
	}
	return s.bySlugRules(slug)
}

var manyGamesRe = regexp.MustCompile(`(?i)\d{3,}\+?\s*games?`)

// slugRule is one row of the slug decision table: the first rule whose
// match predicate fires filters and orders the whole catalog. Rule order is
// the priority contract.
type slugRule struct {
	match  func(slug string) bool
	filter func(p *model.ProductRecord) bool
	order  func(ps []*model.ProductRecord)
}

func slugContains(subs ...string) func(string) bool {
	return func(slug string) bool {
		for _, sub := range subs {
			if strings.Contains(slug, sub) {
				return true
			}
		}
		return false
	}
}

func titleDescContains(p *model.ProductRecord, subs ...string) bool {
	text := strings.ToLower(p.Title + " " + p.Description)
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

var slugRules = []slugRule{
	{
		match: slugContains("best-handheld", "best-retro"),
		filter: func(p *model.ProductRecord) bool {
			return p.Rating >= 4.0 && p.ReviewCount >= 50
		},
		order: sortByWeightedScore,
	},
	{
		match: slugContains("budget", "cheap"),
		filter: func(p *model.ProductRecord) bool {
			price := model.PriceValue(p.Price)
			return price > 0 && price < 80 && p.Rating >= 3.5
		},
		order: sortByPriceAsc,
	},
	{
		match: slugContains("premium", "high-end"),
		filter: func(p *model.ProductRecord) bool {
			return model.PriceValue(p.Price) >= 150 && p.Rating >= 4.0
		},
		order: sortByWeightedScore,
	},
	{
		match: slugContains("portable", "compact"),
		filter: func(p *model.ProductRecord) bool {
			title := strings.ToLower(p.Title)
			for _, sub := range []string{"mini", "small", "compact", "3.", "3.5", "3.0"} {
				if strings.Contains(title, sub) {
					return true
				}
			}
			return false
		},
		order: sortByWeightedScore,
	},
	{
		match: slugContains("android"),
		filter: func(p *model.ProductRecord) bool {
			return titleDescContains(p, "android") || p.Category == model.CategoryAndroid
		},
		order: sortByWeightedScore,
	},
	{
		match: slugContains("linux"),
		filter: func(p *model.ProductRecord) bool {
			return titleDescContains(p, "linux", "emuelec") || p.Category == model.CategoryLinux
		},
		order: sortByWeightedScore,
	},
	{
		match: slugContains("kids", "children"),
		filter: func(p *model.ProductRecord) bool {
			return titleDescContains(p, "kids", "children", "toy") || p.Category == model.CategoryKids
		},
		order: sortByWeightedScore,
	},
	{
		match: func(slug string) bool {
			return strings.Contains(slug, "games") && !strings.Contains(slug, "handheld-games")
		},
		filter: func(p *model.ProductRecord) bool {
			text := strings.ToLower(p.Title + " " + p.Description)
			return manyGamesRe.MatchString(text) || strings.Contains(text, "10000") || strings.Contains(text, "15000")
		},
		order: sortByWeightedScore,
	},
	{
		// Default: solid rating with some review volume.
		match: func(string) bool { return true },
		filter: func(p *model.ProductRecord) bool {
			return p.Rating >= 3.5 && p.ReviewCount >= 10
		},
		order: sortByWeightedScore,
	},
}

func (s *Service) bySlugRules(slug string) []*model.ProductRecord {
	for _, rule := range slugRules {
		if !rule.match(slug) {
			continue
		}
		out := filterProducts(s.cat.Products, rule.filter)
		rule.order(out)
		return out
	}
	return nil
}

// Ranked listings. A non-positive limit falls back to each listing's
// default page size.

func (s *Service) TopRated(limit int) []*model.ProductRecord {
	out := filterProducts(s.cat.Products, func(p *model.ProductRecord) bool {
		return p.Rating >= 3.5 && p.ReviewCount >= 10
	})
	sortByWeightedScore(out)
	return truncate(out, limit, 10)
}

// Featured is the landing-page selection: the top rated, smaller page.
func (s *Service) Featured(limit int) []*model.ProductRecord {
	return truncate(s.TopRated(0), limit, 6)
}

func (s *Service) CommunityFavorites(limit int) []*model.ProductRecord {
	out := filterProducts(s.cat.Products, func(p *model.ProductRecord) bool {
		return p.ReviewCount >= 50
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReviewCount > out[j].ReviewCount
	})
	return truncate(out, limit, 4)
}

func (s *Service) EditorsPicks(limit int) []*model.ProductRecord {
	out := filterProducts(s.cat.Products, func(p *model.ProductRecord) bool {
		return p.Rating >= 4.3 && p.ReviewCount >= 20
	})
	sortByWeightedScore(out)
	return truncate(out, limit, 4)
}

func (s *Service) BudgetFriendly(limit int) []*model.ProductRecord {
	out := filterProducts(s.cat.Products, func(p *model.ProductRecord) bool {
		price := model.PriceValue(p.Price)
		return price > 0 && price < 100 && p.Rating >= 3.5
	})
	sortByPriceAsc(out)
	return truncate(out, limit, 4)
}

func (s *Service) Premium(limit int) []*model.ProductRecord {
	out := filterProducts(s.cat.Products, func(p *model.ProductRecord) bool {
		return model.PriceValue(p.Price) >= 200 && p.Rating >= 4.0
	})
	sortByWeightedScore(out)
	return truncate(out, limit, 4)
}

// ByCategoryLimited resolves a category and drops ASINs the caller already
// used, so composed page sections never repeat a product.
func (s *Service) ByCategoryLimited(slug string, limit int, exclude map[string]struct{}) []*model.ProductRecord {
	out := filterProducts(s.ByCategory(slug), func(p *model.ProductRecord) bool {
		_, used := exclude[p.ASIN]
		return !used
	})
	sortByWeightedScore(out)
	return truncate(out, limit, 4)
}

func filterProducts(ps []*model.ProductRecord, keep func(*model.ProductRecord) bool) []*model.ProductRecord {
	out := make([]*model.ProductRecord, 0, len(ps))
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func sortByWeightedScore(ps []*model.ProductRecord) {
	sort.SliceStable(ps, func(i, j int) bool {
		return model.WeightedScore(ps[i]) > model.WeightedScore(ps[j])
	})
}

func sortByPriceAsc(ps []*model.ProductRecord) {
	sort.SliceStable(ps, func(i, j int) bool {
		return model.PriceValue(ps[i].Price) < model.PriceValue(ps[j].Price)
	})
}

func truncate(ps []*model.ProductRecord, limit, def int) []*model.ProductRecord {
	if limit <= 0 {
		limit = def
	}
	if len(ps) > limit {
		return ps[:limit]
	}
	return ps
}
