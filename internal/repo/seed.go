// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file seeds the default question catalog on first run.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

type seedChoice struct {
	text   string
	value  string
	weight float64
}

type seedQuestion struct {
	text     string
	qtype    string
	orderKey int
	choices  []seedChoice
}

// defaultCatalog is the six-question v1 set. Orders 1–2 are context-only
// (weight 0 choices); orders 3–6 carry the temperature weights the default
// coefficient table scores.
var defaultCatalog = []seedQuestion{
	{
		text: "Where did this meeting start?", qtype: "context", orderKey: 1,
		choices: []seedChoice{
			{"Bar / pub", "bar", 0.0},
			{"Restaurant", "restaurant", 0.0},
			{"Cafe", "cafe", 0.0},
			{"Street / neighborhood", "street", 0.0},
			{"Other", "other", 0.0},
		},
	},
	{
		text: "How did the two of you meet?", qtype: "context", orderKey: 2,
		choices: []seedChoice{
			{"Introduced by a friend", "introduction", 0.0},
			{"By coincidence", "coincidence", 0.0},
			{"Social media / app", "sns_app", 0.0},
			{"Work / school", "work_school", 0.0},
			{"Other", "other", 0.0},
		},
	},
	{
		text: "How does the mood feel right now?", qtype: "sentiment", orderKey: 3,
		choices: []seedChoice{
			{"A little awkward", "awkward", 0.2},
			{"Comfortable", "comfortable", 0.5},
			{"Excited", "excited", 0.7},
			{"We feel really close", "close", 0.9},
		},
	},
	{
		text: "What are you hoping for from today?", qtype: "expectation", orderKey: 4,
		choices: []seedChoice{
			{"Conversation is enough", "conversation", 0.2},
			{"A good time together", "good_time", 0.4},
			{"We might grow closer", "closer", 0.6},
			{"Going with the flow", "go_with_flow", 0.5},
		},
	},
	{
		text: "As of this moment, what physical distance feels comfortable?", qtype: "distance", orderKey: 5,
		choices: []seedChoice{
			{"Talking only", "conversation_only", 0.1},
			{"Light touch (holding hands)", "light_skin", 0.4},
			{"A hug", "hug", 0.6},
			{"Closer is fine", "closer_ok", 0.9},
		},
	},
	{
		text: "Does the current pace feel comfortable to you?", qtype: "comfort", orderKey: 6,
		choices: []seedChoice{
			{"Yes, I'm fine", "ok", 0.7},
			{"I'm a little unsure", "concerned", 0.3},
			{"I can't tell yet", "unsure", 0.5},
		},
	},
}

// SeedQuestions inserts the default question catalog if the questions table
// is empty. Safe to call on every startup.
func SeedQuestions(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Question{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sq := range defaultCatalog {
			q := domain.Question{
				QuestionText: sq.text,
				QuestionType: sq.qtype,
				OrderKey:     sq.orderKey,
			}
			for i, sc := range sq.choices {
				q.Choices = append(q.Choices, domain.QuestionChoice{
					ChoiceText:        sc.text,
					ChoiceValue:       sc.value,
					OrderKey:          i + 1,
					TemperatureWeight: sc.weight,
				})
			}
			if err := CreateQuestion(ctx, tx, &q); err != nil {
				return err
			}
		}
		return nil
	})
}
