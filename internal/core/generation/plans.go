package generation

import (
	"strings"

	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

// Event types with a fixed section plan.
const (
	EventBreakfast = "breakfast"
	EventLunch     = "lunch"
	EventTeaTime   = "tea_time"
	EventDinner    = "dinner"
	EventCocktail  = "cocktail"
)

// SectionPlan is one section of an event-type plan: which section type,
// its display title, how many recipes it must hold, and a hint for the
// name-generation prompt. Plans are static configuration and the ground
// truth for structural validation.
type SectionPlan struct {
	Type     string
	Title    string
	Count    int
	Guidance string
}

var eventLabels = map[string]string{
	EventBreakfast: "Kahvaltı",
	EventLunch:     "Öğle Yemeği",
	EventTeaTime:   "Çay Saati",
	EventDinner:    "Akşam Yemeği",
	EventCocktail:  "Kokteyl",
}

var sectionPlans = map[string][]SectionPlan{
	EventBreakfast: {
		{Type: "pastry", Title: "Hamur İşleri", Count: 2, Guidance: "börek, poğaça gibi fırın ürünleri"},
		{Type: "egg_dish", Title: "Yumurtalı", Count: 1, Guidance: "yumurta bazlı sıcak bir yemek"},
		{Type: "spread", Title: "Kahvaltılıklar", Count: 2, Guidance: "ezme, reçel, sürülebilir lezzetler"},
		{Type: "drink", Title: "İçecekler", Count: 1, Guidance: "sıcak veya soğuk içecek"},
	},
	EventLunch: {
		{Type: "soup", Title: "Çorba", Count: 1, Guidance: "günün çorbası"},
		{Type: "main", Title: "Ana Yemekler", Count: 2, Guidance: "doyurucu ana yemekler"},
		{Type: "salad", Title: "Salata", Count: 1, Guidance: "mevsim salatası"},
		{Type: "dessert", Title: "Tatlı", Count: 1, Guidance: "hafif bir tatlı"},
	},
	EventTeaTime: {
		{Type: "cake", Title: "Kek", Count: 1, Guidance: "dilimlik kek veya pasta"},
		{Type: "cookie", Title: "Kurabiyeler", Count: 2, Guidance: "çayın yanına kurabiye"},
		{Type: "savory_pastry", Title: "Tuzlular", Count: 1, Guidance: "tuzlu hamur işi"},
		{Type: "drink", Title: "İçecekler", Count: 1, Guidance: "çay dışında bir içecek"},
	},
	EventDinner: {
		{Type: "soup", Title: "Çorba", Count: 1, Guidance: "açılış çorbası"},
		{Type: "meze", Title: "Mezeler", Count: 2, Guidance: "soğuk mezeler"},
		{Type: "hot_appetizer", Title: "Ara Sıcak", Count: 1, Guidance: "sıcak başlangıç"},
		{Type: "main", Title: "Ana Yemekler", Count: 2, Guidance: "et veya sebze ana yemekleri"},
		{Type: "dessert", Title: "Tatlı", Count: 1, Guidance: "sofra tatlısı"},
		{Type: "drink", Title: "İçecekler", Count: 1, Guidance: "menüye uygun içecek"},
	},
	EventCocktail: {
		{Type: "canape", Title: "Kanepeler", Count: 3, Guidance: "tek lokmalık kanepeler"},
		{Type: "finger_food", Title: "Atıştırmalıklar", Count: 2, Guidance: "elde yenebilir ikramlar"},
		{Type: "dessert", Title: "Tatlı", Count: 1, Guidance: "mini tatlı"},
		{Type: "drink", Title: "İçecekler", Count: 2, Guidance: "kokteyl ve alkolsüz seçenek"},
	},
}

// eventKeywords maps folded free-text markers onto event types. Order
// matters: the first matching group wins.
var eventKeywords = []struct {
	event string
	words []string
}{
	{EventBreakfast, []string{"kahvalti", "brunch", "breakfast"}},
	{EventLunch, []string{"ogle", "oglen", "lunch"}},
	{EventTeaTime, []string{"cay", "ikindi", "tea"}},
	{EventCocktail, []string{"kokteyl", "cocktail", "parti", "party"}},
	{EventDinner, []string{"aksam", "dinner", "davet", "yemek daveti"}},
}

// NormalizeEventType maps free text like "Akşam yemeği" onto one of the
// planned event types.
func NormalizeEventType(text string) (string, error) {
	folded := taxonomy.Fold(text)
	if _, ok := sectionPlans[folded]; ok {
		return folded, nil
	}
	for _, group := range eventKeywords {
		for _, w := range group.words {
			if strings.Contains(folded, w) {
				return group.event, nil
			}
		}
	}
	return "", common.NewValidationError("unknown event type: " + text)
}

// PlanFor returns the section plan for a normalized event type.
func PlanFor(eventType string) ([]SectionPlan, bool) {
	plan, ok := sectionPlans[eventType]
	return plan, ok
}

// EventLabel returns the Turkish display label for an event type.
func EventLabel(eventType string) string {
	if label, ok := eventLabels[eventType]; ok {
		return label
	}
	return eventType
}
