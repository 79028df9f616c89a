package generation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tariften-backend/internal/core/ai/openai"
	"tariften-backend/internal/core/imagesearch"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/core/taxonomy"
	"tariften-backend/internal/pkg/common"
)

// maxRecipeNameLen rejects section entries that are sentences rather than
// dish names.
const maxRecipeNameLen = 60

// minDescriptionLen is the lower bound for AI-authored menu descriptions.
// Shorter output gets a generic closing sentence appended.
const minDescriptionLen = 450

const descriptionCloser = " Bu menü, sofranızı misafirlerinizin uzun süre hatırlayacağı bir deneyime dönüştürmek için özenle kurgulandı; her bölüm bir öncekini tamamlayacak şekilde dengelendi."

// MenuRequest is the input to menu composition.
type MenuRequest struct {
	Concept        string
	GuestCount     int
	EventType      string // free text, normalized against the plans
	DietPreference string
	AuthorID       string
}

// MenuService composes a full menu: metadata, section recipe names
// validated against the static plan, and per-name resolution to existing
// or freshly generated recipes.
type MenuService struct {
	llm     openai.LLM
	store   store.ContentStore
	recipes *RecipeService
	images  *imagesearch.Service
	// fuzzyThreshold is the minimum word-overlap ratio for matching a
	// section recipe name to an existing record.
	fuzzyThreshold float64
}

// NewMenuService wires the menu engine.
func NewMenuService(llm openai.LLM, st store.ContentStore, recipes *RecipeService, img *imagesearch.Service, fuzzyThreshold float64) *MenuService {
	if fuzzyThreshold <= 0 || fuzzyThreshold > 1 {
		fuzzyThreshold = 0.6
	}
	return &MenuService{
		llm:            llm,
		store:          st,
		recipes:        recipes,
		images:         img,
		fuzzyThreshold: fuzzyThreshold,
	}
}

// sectionEntry is one recipe slot of a section. Skip marks a filler slot
// produced by shortfall padding; it is never materialized into a recipe.
type sectionEntry struct {
	Name string
	Skip bool
}

// ComposeMenu runs the composition pipeline and persists the menu. No
// menu is persisted when structural validation fails after the single
// repair pass.
func (s *MenuService) ComposeMenu(ctx context.Context, req MenuRequest) (*store.Menu, error) {
	if !s.llm.Configured() {
		return nil, common.NewConfigurationError("language model API key is not configured")
	}
	if strings.TrimSpace(req.Concept) == "" {
		return nil, common.NewValidationError("menu concept must not be empty")
	}
	if req.GuestCount < 1 {
		return nil, common.NewValidationError("guest count must be at least 1")
	}

	eventType, err := NormalizeEventType(req.EventType)
	if err != nil {
		return nil, err
	}
	plan, _ := PlanFor(eventType)
	label := EventLabel(eventType)
	common.LogInfo("menu composition started",
		zap.String("event_type", eventType), zap.Int("guest_count", req.GuestCount))

	meta, err := s.generateMeta(ctx, req, label)
	if err != nil {
		return nil, err
	}

	sections, err := s.generateSections(ctx, req, label, plan)
	if err != nil {
		return nil, err
	}

	menu := &store.Menu{
		Title:       meta.Title,
		Description: meta.Description,
		Concept:     req.Concept,
		GuestCount:  req.GuestCount,
		EventType:   eventType,
		SEO:         meta.SEO,
		AuthorID:    req.AuthorID,
	}

	used := make(map[string]bool)
	for i, ps := range plan {
		section := store.Section{Type: ps.Type, Title: ps.Title}
		for _, entry := range sections[i] {
			if entry.Skip {
				continue
			}
			id := s.resolveRecipe(ctx, entry.Name, req.AuthorID)
			if id == "" || used[id] {
				continue
			}
			used[id] = true
			section.RecipeIDs = append(section.RecipeIDs, id)
		}
		menu.Sections = append(menu.Sections, section)
	}

	query := meta.ImageQuery
	if strings.TrimSpace(query) == "" {
		query = meta.Title
	}
	menu.Image = s.images.Resolve(ctx, query, "")

	if err := s.store.CreateMenu(ctx, menu); err != nil {
		return nil, fmt.Errorf("persist menu: %w", err)
	}
	common.LogInfo("menu composition finished",
		zap.String("menu_id", menu.ID), zap.String("title", menu.Title))
	return menu, nil
}

func (s *MenuService) generateMeta(ctx context.Context, req MenuRequest, label string) (*menuMetaDraft, error) {
	system, user := buildMenuMetaPrompts(req.Concept, req.GuestCount, label, req.DietPreference)
	raw, err := s.llm.Complete(ctx, system, user, tempSuggest)
	if err != nil {
		return nil, err
	}
	meta, err := parseMenuMetaDraft(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(meta.Title) == "" {
		return nil, common.NewGenerationError("generated menu has no title")
	}
	if len([]rune(meta.Description)) < minDescriptionLen {
		meta.Description += descriptionCloser
	}
	return meta, nil
}

// generateSections requests the per-section recipe names, validates them
// against the plan, repairs once, and pads/truncates to the plan counts.
// The returned slice is index-aligned with the plan.
func (s *MenuService) generateSections(ctx context.Context, req MenuRequest, label string, plan []SectionPlan) ([][]sectionEntry, error) {
	system, user := buildSectionNamesPrompts(req.Concept, req.GuestCount, label, req.DietPreference, plan)
	raw, err := s.llm.Complete(ctx, system, user, tempPlan)
	if err != nil {
		return nil, err
	}
	names, err := parseSectionNames(raw)
	if err != nil {
		return nil, err
	}

	reasons := validateSections(names, plan)
	if len(reasons) > 0 {
		common.LogWarn("menu sections flagged for repair", zap.Strings("reasons", reasons))
		namesJSON, _ := common.ToJSON(names)
		repairUser := buildRedistributePrompt(namesJSON, plan, reasons)
		repairedRaw, repairErr := s.llm.Complete(ctx, system, repairUser, tempPlan)
		if repairErr == nil {
			if repaired, parseErr := parseSectionNames(repairedRaw); parseErr == nil {
				names = repaired
			}
		}
		if again := validateSections(names, plan); len(again) > 0 &&
			!onlyCountMismatches(again) {
			return nil, common.NewCompositionError(
				"menu sections failed validation after repair: " + strings.Join(again, "; "))
		}
	}

	// Count mismatches surviving repair are absorbed here: excess names
	// are truncated and shortfalls padded with skip markers.
	out := make([][]sectionEntry, len(plan))
	for i, ps := range plan {
		list := names[ps.Type]
		entries := make([]sectionEntry, 0, ps.Count)
		for _, name := range list {
			if len(entries) == ps.Count {
				break
			}
			name = strings.TrimSpace(name)
			if name == "" || len([]rune(name)) > maxRecipeNameLen {
				continue
			}
			entries = append(entries, sectionEntry{Name: name})
		}
		for len(entries) < ps.Count {
			entries = append(entries, sectionEntry{Name: req.Concept, Skip: true})
		}
		out[i] = entries
	}
	return out, nil
}

// validateSections checks the type set, per-type counts and name lengths
// against the plan.
func validateSections(names map[string][]string, plan []SectionPlan) []string {
	var reasons []string
	planTypes := make(map[string]int, len(plan))
	for _, ps := range plan {
		planTypes[ps.Type] = ps.Count
	}
	for t := range names {
		if _, ok := planTypes[t]; !ok {
			reasons = append(reasons, fmt.Sprintf("unexpected section type %q", t))
		}
	}
	for _, ps := range plan {
		list, ok := names[ps.Type]
		if !ok {
			reasons = append(reasons, fmt.Sprintf("missing section type %q", ps.Type))
			continue
		}
		if len(list) != ps.Count {
			reasons = append(reasons, fmt.Sprintf(
				"section %q has %d recipes, plan requires %d", ps.Type, len(list), ps.Count))
		}
		for _, name := range list {
			if len([]rune(name)) > maxRecipeNameLen {
				reasons = append(reasons, fmt.Sprintf(
					"recipe name too long in section %q: %q", ps.Type, name))
			}
		}
	}
	return reasons
}

// onlyCountMismatches reports whether the remaining reasons are all count
// or name-length problems, which padding and truncation can absorb.
func onlyCountMismatches(reasons []string) bool {
	for _, r := range reasons {
		if strings.HasPrefix(r, "unexpected section type") ||
			strings.HasPrefix(r, "missing section type") {
			return false
		}
	}
	return true
}

// resolveRecipe maps a section recipe name to a persisted recipe ID:
// exact title, exact slug, fuzzy word-overlap search, then fresh
// generation in menu mode. Returns "" when the name cannot be resolved;
// the caller skips the slot.
func (s *MenuService) resolveRecipe(ctx context.Context, name, authorID string) string {
	if r, err := s.store.GetRecipeByTitle(ctx, name); err == nil && r != nil {
		return r.ID
	}
	if r, err := s.store.GetRecipeBySlug(ctx, taxonomy.Slugify(name)); err == nil && r != nil {
		return r.ID
	}

	if id := s.fuzzyMatch(ctx, name); id != "" {
		return id
	}

	recipe, err := s.recipes.Generate(ctx, name, PromptPlan, true)
	if err != nil {
		common.LogWarn("section recipe generation failed, skipping",
			zap.String("name", name), zap.Error(err))
		return ""
	}
	if len(recipe.Steps) < 3 {
		common.LogWarn("generated section recipe too thin, skipping",
			zap.String("name", name), zap.Int("steps", len(recipe.Steps)))
		return ""
	}
	recipe.AuthorID = authorID
	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		common.LogWarn("section recipe persist failed, skipping",
			zap.String("name", name), zap.Error(err))
		return ""
	}
	return recipe.ID
}

// fuzzyMatch searches the store and accepts the best candidate whose
// word-overlap ratio with the name meets the threshold.
func (s *MenuService) fuzzyMatch(ctx context.Context, name string) string {
	result, err := s.store.SearchRecipes(ctx, store.SearchQuery{Text: name, PerPage: 10})
	if err != nil || result == nil {
		return ""
	}
	bestID := ""
	bestScore := 0.0
	for _, r := range result.Recipes {
		score := wordOverlap(name, r.Title)
		if score > bestScore {
			bestScore = score
			bestID = r.ID
		}
	}
	if bestScore >= s.fuzzyThreshold {
		return bestID
	}
	return ""
}

// wordOverlap scores two titles as the size of their folded word
// intersection over the larger word count.
func wordOverlap(a, b string) float64 {
	wa := strings.Fields(taxonomy.Fold(a))
	wb := strings.Fields(taxonomy.Fold(b))
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(wa))
	for _, w := range wa {
		set[w] = true
	}
	overlap := 0
	for _, w := range wb {
		if set[w] {
			overlap++
			set[w] = false
		}
	}
	max := len(wa)
	if len(wb) > max {
		max = len(wb)
	}
	return float64(overlap) / float64(max)
}
