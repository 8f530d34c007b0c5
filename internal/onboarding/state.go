// Package onboarding хранит состояние мастера подключения профессионала.
//
// Мастер состоит из трёх страниц: business, loyalty и plan. Единственное
// значение, которое нужно пронести между ними, это выбранный тариф.
// Состояние живёт только в памяти процесса и теряется вместе с областью.
package onboarding

import "github.com/magabrotheeeer/loyalty-platform/internal/models"

// Step — страница мастера.
type Step string

const (
	StepBusiness Step = "business"
	StepPlan     Step = "plan"
)

// State — выбор пользователя в рамках одной области мастера.
// State не потокобезопасен, синхронизацией занимается Registry.
type State struct {
	plan     models.Plan
	selected bool
}

// SetSelectedPlan заменяет текущий выбор целиком.
func (s *State) SetSelectedPlan(p models.Plan) {
	s.plan = p
	s.selected = true
}

// SelectedPlan возвращает выбранный тариф, если он есть.
func (s *State) SelectedPlan() (models.Plan, bool) {
	if !s.selected {
		return models.Plan{}, false
	}
	return s.plan, true
}

// ClearSelectedPlan сбрасывает выбор.
func (s *State) ClearSelectedPlan() {
	s.plan = models.Plan{}
	s.selected = false
}

// Step возвращает текущую страницу мастера.
func (s *State) Step() Step {
	if s.selected {
		return StepPlan
	}
	return StepBusiness
}
