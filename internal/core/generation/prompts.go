package generation

import (
	"fmt"
	"strings"

	"tariften-backend/internal/core/intent"
	"tariften-backend/internal/core/store"
)

// PromptType selects the ingredient-intent sub-mode and its temperature.
type PromptType string

const (
	// PromptRescue cooks strictly from what the user has on hand.
	PromptRescue PromptType = "rescue"
	// PromptPlan builds a dish for a planned occasion around the inputs.
	PromptPlan PromptType = "plan"
	// PromptSuggest riffs more freely on the inputs.
	PromptSuggest PromptType = "suggest"
)

// Generation temperatures per intent and sub-mode. Named dishes get the
// tightest sampling so the model does not wander off to another dish.
const (
	tempDish    = 0.30
	tempNeed    = 0.60
	tempRescue  = 0.40
	tempPlan    = 0.50
	tempSuggest = 0.65
)

func temperatureFor(kind intent.Kind, pt PromptType) float64 {
	switch kind {
	case intent.KindDish:
		return tempDish
	case intent.KindNeed:
		return tempNeed
	default:
		switch pt {
		case PromptPlan:
			return tempPlan
		case PromptSuggest:
			return tempSuggest
		default:
			return tempRescue
		}
	}
}

const recipeSchema = `{
  "title": "string",
  "excerpt": "string",
  "prep_time": number (dakika),
  "cook_time": number (dakika),
  "calories": number,
  "servings": number,
  "ingredients": [{"name": "string", "amount": "string", "unit": "string"}],
  "steps": ["string"],
  "cuisine": ["string"],
  "diet": ["string"],
  "meal_type": ["string"],
  "difficulty": ["string"],
  "seo": {"title": "string", "description": "string", "focus_keywords": "string"},
  "chef_tip": "string",
  "serving_weight": "string",
  "image_query": "string (2-3 İngilizce kelime)"
}`

// buildRecipeSystemPrompt enumerates the output schema, the allowed
// category terms and the intent-specific rules.
func buildRecipeSystemPrompt(kind intent.Kind, allowed map[string][]string) string {
	var b strings.Builder
	b.WriteString("Sen Türkçe yazan profesyonel bir şef ve yemek editörüsün. ")
	b.WriteString("Yanıtını SADECE geçerli bir JSON nesnesi olarak ver, başka hiçbir metin ekleme.\n\n")
	b.WriteString("JSON şeması:\n")
	b.WriteString(recipeSchema)
	b.WriteString("\n\nKategori kuralları: aşağıdaki listeler dışında DEĞER UYDURMA.\n")
	b.WriteString(fmt.Sprintf("- cuisine: %s\n", strings.Join(allowed[store.TaxCuisine], ", ")))
	b.WriteString(fmt.Sprintf("- diet: %s\n", strings.Join(allowed[store.TaxDiet], ", ")))
	b.WriteString(fmt.Sprintf("- meal_type: %s\n", strings.Join(allowed[store.TaxMealType], ", ")))
	b.WriteString(fmt.Sprintf("- difficulty: %s\n", strings.Join(allowed[store.TaxDifficulty], ", ")))
	b.WriteString("\nBaşlık kuralları: başlık özgün ve iştah açıcı olmalı; ")
	b.WriteString("seo.title sonunda parantez içinde kısa bir çekici ifade bulunmalı, örn. \"(Tam Kıvamında)\".\n")
	b.WriteString("Adım kuralları: steps en az 6 adım içermeli, her adım tek cümle olmalı.\n")

	switch kind {
	case intent.KindDish:
		b.WriteString("İstenen yemek adı verildi: BU yemeğin tarifini yaz, onu başka bir yemeğe çevirme.\n")
	case intent.KindIngredients:
		b.WriteString("Malzeme listesi verildi: verilen ana malzeme, ingredients listesinin İLK 5 kaleminden birinde geçmeli.\n")
	case intent.KindNeed:
		b.WriteString("Bir ihtiyaç/durum tarifi verildi: duruma uygun tek bir yemek seç ve tarifini yaz.\n")
	}
	return b.String()
}

func buildRecipeUserPrompt(kind intent.Kind, pt PromptType, subject string) string {
	switch kind {
	case intent.KindDish:
		return fmt.Sprintf("Şu yemeğin tarifini yaz: %s", subject)
	case intent.KindNeed:
		return fmt.Sprintf("Şu duruma uygun bir yemek tarifi yaz: %s", subject)
	default:
		switch pt {
		case PromptPlan:
			return fmt.Sprintf("Şu malzemeleri kullanarak planlı bir öğün için tarif yaz: %s", subject)
		case PromptSuggest:
			return fmt.Sprintf("Şu malzemelerden ilham alan yaratıcı bir tarif öner: %s", subject)
		default:
			return fmt.Sprintf("Elimde sadece şunlar var, bunlarla yapılabilecek bir tarif yaz: %s", subject)
		}
	}
}

// buildRepairPrompt embeds the rejected JSON and restates the constraints
// the draft violated.
func buildRepairPrompt(raw string, reasons []string) string {
	var b strings.Builder
	b.WriteString("Aşağıdaki JSON tarif şu kurallara uymuyor:\n")
	for _, r := range reasons {
		b.WriteString("- " + r + "\n")
	}
	b.WriteString("\nAynı şemayı koruyarak tarifi düzelt ve SADECE düzeltilmiş JSON nesnesini döndür. ")
	b.WriteString("En az 3 adım ve en az 4 malzeme olmalı.\n\nJSON:\n")
	b.WriteString(raw)
	return b.String()
}

// buildMenuMetaPrompts produces the system and user messages for the menu
// metadata call (title, long description, image query, SEO block).
func buildMenuMetaPrompts(concept string, guestCount int, eventLabel, diet string) (string, string) {
	system := `Sen Türkçe yazan profesyonel bir menü danışmanısın. Yanıtını SADECE geçerli bir JSON nesnesi olarak ver.
JSON şeması:
{
  "title": "string",
  "description": "string (450-650 karakter, akıcı paragraf)",
  "image_query": "string (2-3 İngilizce kelime)",
  "seo": {"title": "string", "description": "string", "focus_keywords": "string"}
}`
	user := fmt.Sprintf(
		"Etkinlik: %s. Konsept: %s. Kişi sayısı: %d. Diyet tercihi: %s. Bu etkinlik için menü başlığı ve açıklaması üret.",
		eventLabel, concept, guestCount, orDefault(diet, "belirtilmedi"))
	return system, user
}

// buildSectionNamesPrompts produces the messages for the section
// recipe-name call. The plan is spelled out so the model returns exactly
// the requested counts.
func buildSectionNamesPrompts(concept string, guestCount int, eventLabel, diet string, plan []SectionPlan) (string, string) {
	var schema strings.Builder
	schema.WriteString("{\n")
	for i, s := range plan {
		schema.WriteString(fmt.Sprintf("  %q: [%d adet yemek adı]", s.Type, s.Count))
		if i < len(plan)-1 {
			schema.WriteString(",")
		}
		schema.WriteString("\n")
	}
	schema.WriteString("}")

	system := fmt.Sprintf(`Sen Türkçe yazan profesyonel bir menü danışmanısın. Yanıtını SADECE geçerli bir JSON nesnesi olarak ver.
Her bölüm için TAM olarak istenen sayıda yemek adı döndür. Yemek adları kısa olmalı: parantez, ölçü veya açıklama cümlesi içermemeli.
JSON şeması:
%s`, schema.String())

	var lines []string
	for _, s := range plan {
		lines = append(lines, fmt.Sprintf("- %s (%s): %d yemek", s.Type, s.Title, s.Count))
	}
	user := fmt.Sprintf(
		"Etkinlik: %s. Konsept: %s. Kişi sayısı: %d. Diyet tercihi: %s.\nBölümler:\n%s",
		eventLabel, concept, guestCount, orDefault(diet, "belirtilmedi"), strings.Join(lines, "\n"))
	return system, user
}

// buildRedistributePrompt asks the model to fix a structurally invalid
// section-name payload without changing the type set or counts.
func buildRedistributePrompt(raw string, plan []SectionPlan, reasons []string) string {
	var b strings.Builder
	b.WriteString("Aşağıdaki menü bölümleri plana uymuyor:\n")
	for _, r := range reasons {
		b.WriteString("- " + r + "\n")
	}
	b.WriteString("\nBölüm tiplerini ve sayılarını DEĞİŞTİRMEDEN yemek adlarını doğru bölümlere dağıt. Plan:\n")
	for _, s := range plan {
		b.WriteString(fmt.Sprintf("- %s: %d yemek\n", s.Type, s.Count))
	}
	b.WriteString("\nSADECE düzeltilmiş JSON nesnesini döndür.\n\nJSON:\n")
	b.WriteString(raw)
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
