// Package plans описывает тарифы и их лимиты.
package plans

import "sort"

const (
	Free     = "free"
	Pro      = "pro"
	Business = "business"
)

// Unlimited - значение лимита без ограничений
const Unlimited = -1

// Kind - тип создаваемой сущности, на который действует лимит
type Kind string

const (
	KindJob    Kind = "job"
	KindResume Kind = "resume"
)

// Limits - запись тарифа. Не хранится в БД.
type Limits struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Price        int      `json:"price"` // USD в месяц
	PriceID      string   `json:"-"`     // Stripe price, пусто у бесплатного тарифа
	JobsLimit    int      `json:"jobs_limit"`
	ResumesLimit int      `json:"resumes_limit"`
	Features     []string `json:"features"`
}

// Limit возвращает лимит для типа сущности
func (l Limits) Limit(kind Kind) int {
	if kind == KindJob {
		return l.JobsLimit
	}
	return l.ResumesLimit
}

// Catalog - таблица тарифов. Stripe price id подставляются из конфига.
type Catalog struct {
	plans map[string]Limits
}

// NewCatalog строит таблицу тарифов
func NewCatalog(pricePro, priceBusiness string) *Catalog {
	return &Catalog{plans: map[string]Limits{
		Free: {
			Name:         Free,
			DisplayName:  "Free",
			Price:        0,
			JobsLimit:    1,
			ResumesLimit: 50,
			Features:     []string{"Basic AI parsing", "Manual emails"},
		},
		Pro: {
			Name:         Pro,
			DisplayName:  "Pro",
			Price:        99,
			PriceID:      pricePro,
			JobsLimit:    5,
			ResumesLimit: 500,
			Features:     []string{"Advanced AI ranking", "Automated emails", "Custom templates"},
		},
		Business: {
			Name:         Business,
			DisplayName:  "Business",
			Price:        299,
			PriceID:      priceBusiness,
			JobsLimit:    20,
			ResumesLimit: Unlimited,
			Features:     []string{"Unlimited resumes", "Team access", "ATS integration", "Priority support"},
		},
	}}
}

// Get возвращает лимиты тарифа, неизвестное имя - лимиты free
func (c *Catalog) Get(plan string) Limits {
	if l, ok := c.plans[plan]; ok {
		return l
	}
	return c.plans[Free]
}

// Exists - тариф с таким именем есть в таблице
func (c *Catalog) Exists(plan string) bool {
	_, ok := c.plans[plan]
	return ok
}

// Payable - тариф можно купить (есть цена)
func (c *Catalog) Payable(plan string) bool {
	l, ok := c.plans[plan]
	return ok && l.Price > 0
}

// PlanByPriceID ищет тариф по Stripe price id
func (c *Catalog) PlanByPriceID(priceID string) (string, bool) {
	if priceID == "" {
		return "", false
	}
	for name, l := range c.plans {
		if l.PriceID == priceID {
			return name, true
		}
	}
	return "", false
}

// All возвращает тарифы по возрастанию цены
func (c *Catalog) All() []Limits {
	out := make([]Limits, 0, len(c.plans))
	for _, l := range c.plans {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// EnforceCreationLimit - можно ли создать еще одну сущность при текущем количестве
func (c *Catalog) EnforceCreationLimit(plan string, kind Kind, currentCount int) bool {
	return Allowed(c.Get(plan).Limit(kind), currentCount)
}

// Allowed: limit == -1 или count < limit
func Allowed(limit, count int) bool {
	return limit == Unlimited || count < limit
}
