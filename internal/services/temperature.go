// Package services – temperature scoring
//
// This file implements the weighted temperature strategy. Each participant's
// answers are reduced to a single temperature by a coefficient-weighted
// average over the choices they picked; the matching-level result is the mean
// of the participant temperatures plus their absolute difference.
//
// The coefficient table is keyed by question ordering key and injected from
// configuration, so the scored question set can change without touching this
// code.
package services

import (
	"math"
	"sort"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

// TemperatureResult is the outcome of scoring one matching.
type TemperatureResult struct {
	// Average is the mean of the participant temperatures (or the single
	// temperature when only one participant answered).
	Average float64
	// Diff is the absolute difference between the two participant
	// temperatures; 0 when fewer than two participants answered.
	Diff float64
	// Participants is the number of participants that contributed a
	// temperature. 0 means the result is the zero fallback.
	Participants int
}

// TemperatureStrategy computes a matching's temperature from its answers.
// Implementations must be pure: the same inputs always yield the same result.
type TemperatureStrategy interface {
	Calculate(answers []domain.Answer, choices map[string]domain.QuestionChoice, questionOrders map[string]int) TemperatureResult
}

// WeightedStrategy scores answers with a per-ordering-key coefficient table.
// Answers whose question has no coefficient (or a non-positive one) are
// excluded from both the numerator and the denominator.
type WeightedStrategy struct {
	// Weights maps question ordering key to its coefficient.
	Weights map[int]float64
}

// NewWeightedStrategy returns a strategy using the given coefficient table.
func NewWeightedStrategy(weights map[int]float64) *WeightedStrategy {
	return &WeightedStrategy{Weights: weights}
}

// Calculate derives the matching temperature. Per participant:
//
//	temperature = Σ(choiceWeight × coeff(orderKey)) / Σ(coeff(orderKey))
//
// over their answers with a positive coefficient; 0 when no answer is scored.
// Two participant temperatures yield (mean, |a−b|); one yields (t, 0);
// none yields (0, 0).
func (w *WeightedStrategy) Calculate(
	answers []domain.Answer,
	choices map[string]domain.QuestionChoice,
	questionOrders map[string]int,
) TemperatureResult {
	byParticipant := make(map[string][]domain.Answer)
	for _, a := range answers {
		byParticipant[a.ParticipantID] = append(byParticipant[a.ParticipantID], a)
	}

	// Deterministic participant order regardless of map iteration.
	ids := make([]string, 0, len(byParticipant))
	for id := range byParticipant {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	temps := make([]float64, 0, len(ids))
	for _, id := range ids {
		temps = append(temps, w.participantTemperature(byParticipant[id], choices, questionOrders))
	}

	switch len(temps) {
	case 2:
		return TemperatureResult{
			Average:      (temps[0] + temps[1]) / 2.0,
			Diff:         math.Abs(temps[0] - temps[1]),
			Participants: 2,
		}
	case 1:
		return TemperatureResult{Average: temps[0], Diff: 0.0, Participants: 1}
	default:
		return TemperatureResult{Average: 0.0, Diff: 0.0, Participants: 0}
	}
}

func (w *WeightedStrategy) participantTemperature(
	answers []domain.Answer,
	choices map[string]domain.QuestionChoice,
	questionOrders map[string]int,
) float64 {
	var total, weightSum float64
	for _, a := range answers {
		choice, okChoice := choices[a.ChoiceID]
		order, okOrder := questionOrders[a.QuestionID]
		if !okChoice || !okOrder {
			continue
		}
		coeff, ok := w.Weights[order]
		if !ok || coeff <= 0 {
			continue
		}
		total += choice.TemperatureWeight * coeff
		weightSum += coeff
	}
	if weightSum <= 0 {
		return 0.0
	}
	return total / weightSum
}
