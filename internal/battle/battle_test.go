package battle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Amyat103/meal-max/internal/battle"
	"github.com/Amyat103/meal-max/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeRecorder struct {
	calls    int
	winnerID int64
	loserID  int64
	err      error
}

func (f *fakeRecorder) RecordBattle(ctx context.Context, winnerID, loserID int64) error {
	f.calls++
	f.winnerID = winnerID
	f.loserID = loserID
	return f.err
}

func sushi() domain.Meal {
	return domain.Meal{ID: 1, Name: "Sushi", Cuisine: "Japanese", Price: decimal.NewFromFloat(15.0), Difficulty: domain.DifficultyHigh}
}

func burger() domain.Meal {
	return domain.Meal{ID: 2, Name: "Burger", Cuisine: "American", Price: decimal.NewFromFloat(8.0), Difficulty: domain.DifficultyLow}
}

func TestModel_Roster(t *testing.T) {
	Convey("Given a new battle model", t, func() {
		recorder := &fakeRecorder{}
		model := battle.NewModel(recorder, zerolog.Nop())

		Convey("When a combatant is prepped", func() {
			err := model.PrepCombatant(sushi())

			Convey("Then the roster holds it", func() {
				So(err, ShouldBeNil)
				combatants := model.Combatants()
				So(combatants, ShouldHaveLength, 1)
				So(combatants[0].ID, ShouldEqual, 1)
			})
		})

		Convey("When a third combatant is prepped", func() {
			So(model.PrepCombatant(sushi()), ShouldBeNil)
			So(model.PrepCombatant(burger()), ShouldBeNil)
			err := model.PrepCombatant(domain.Meal{ID: 3, Name: "Taco", Cuisine: "Mexican", Price: decimal.NewFromFloat(5.0), Difficulty: domain.DifficultyMed})

			Convey("Then it is rejected and the roster is unchanged", func() {
				So(errors.Is(err, battle.ErrRosterFull), ShouldBeTrue)
				So(model.Combatants(), ShouldHaveLength, 2)
			})
		})

		Convey("When the roster is cleared", func() {
			So(model.PrepCombatant(sushi()), ShouldBeNil)
			model.ClearCombatants()

			Convey("Then it is empty", func() {
				So(model.Combatants(), ShouldBeEmpty)
			})
		})

		Convey("When the returned roster is mutated", func() {
			So(model.PrepCombatant(sushi()), ShouldBeNil)
			view := model.Combatants()
			view[0].Name = "Tampered"

			Convey("Then the model's state is untouched", func() {
				So(model.Combatants()[0].Name, ShouldEqual, "Sushi")
			})
		})
	})
}

func TestModel_Score(t *testing.T) {
	Convey("Given a battle model", t, func() {
		model := battle.NewModel(&fakeRecorder{}, zerolog.Nop())

		Convey("Then scores follow price * cuisine length - difficulty modifier", func() {
			// 15.0 * 8 - 1
			So(model.Score(sushi()), ShouldEqual, 119.0)
			// 8.0 * 8 - 3
			So(model.Score(burger()), ShouldEqual, 61.0)
		})
	})
}

func TestModel_Battle(t *testing.T) {
	Convey("Given a model with two evenly matched combatants", t, func() {
		// pad thai: 10.0 * 4 - 1 = 39, green curry: 9.5 * 4 - 3 = 35
		// delta = 4/100 = 0.04, lower scorer wins below 0.46
		padThai := domain.Meal{ID: 10, Name: "Pad Thai", Cuisine: "Thai", Price: decimal.NewFromFloat(10.0), Difficulty: domain.DifficultyHigh}
		greenCurry := domain.Meal{ID: 11, Name: "Green Curry", Cuisine: "Thai", Price: decimal.NewFromFloat(9.5), Difficulty: domain.DifficultyLow}

		newModel := func(roll float64, recorder *fakeRecorder) *battle.Model {
			model := battle.NewModel(recorder, zerolog.Nop(), battle.WithRoll(func() float64 { return roll }))
			So(model.PrepCombatant(padThai), ShouldBeNil)
			So(model.PrepCombatant(greenCurry), ShouldBeNil)
			return model
		}

		Convey("When the roll lands below the upset threshold", func() {
			recorder := &fakeRecorder{}
			model := newModel(0.45, recorder)
			winner, err := model.Battle(context.Background())

			Convey("Then the lower scorer wins", func() {
				So(err, ShouldBeNil)
				So(winner, ShouldEqual, "Green Curry")
			})

			Convey("And exactly one win and one loss are recorded", func() {
				So(recorder.calls, ShouldEqual, 1)
				So(recorder.winnerID, ShouldEqual, 11)
				So(recorder.loserID, ShouldEqual, 10)
			})

			Convey("And only the winner remains on the roster", func() {
				combatants := model.Combatants()
				So(combatants, ShouldHaveLength, 1)
				So(combatants[0].Name, ShouldEqual, "Green Curry")
			})
		})

		Convey("When the roll lands on the threshold", func() {
			recorder := &fakeRecorder{}
			model := newModel(0.46, recorder)
			winner, err := model.Battle(context.Background())

			Convey("Then the higher scorer wins", func() {
				So(err, ShouldBeNil)
				So(winner, ShouldEqual, "Pad Thai")
				So(recorder.winnerID, ShouldEqual, 10)
				So(recorder.loserID, ShouldEqual, 11)
			})
		})
	})

	Convey("Given a model with a lopsided matchup", t, func() {
		// sushi 119 vs burger 61: delta clamps the threshold below zero,
		// so no roll can produce the upset
		recorder := &fakeRecorder{}
		model := battle.NewModel(recorder, zerolog.Nop(), battle.WithRoll(func() float64 { return 0.0 }))
		So(model.PrepCombatant(burger()), ShouldBeNil)
		So(model.PrepCombatant(sushi()), ShouldBeNil)

		Convey("When the battle runs with the lowest possible roll", func() {
			winner, err := model.Battle(context.Background())

			Convey("Then the higher scorer still wins", func() {
				So(err, ShouldBeNil)
				So(winner, ShouldEqual, "Sushi")
			})
		})
	})

	Convey("Given a model with fewer than two combatants", t, func() {
		recorder := &fakeRecorder{}
		model := battle.NewModel(recorder, zerolog.Nop())

		Convey("When a battle is attempted with an empty roster", func() {
			_, err := model.Battle(context.Background())

			So(errors.Is(err, battle.ErrNotEnoughCombatants), ShouldBeTrue)
			So(recorder.calls, ShouldEqual, 0)
		})

		Convey("When a battle is attempted with one combatant", func() {
			So(model.PrepCombatant(sushi()), ShouldBeNil)
			_, err := model.Battle(context.Background())

			So(errors.Is(err, battle.ErrNotEnoughCombatants), ShouldBeTrue)
			So(model.Combatants(), ShouldHaveLength, 1)
		})
	})

	Convey("Given a recorder that fails", t, func() {
		recorder := &fakeRecorder{err: context.DeadlineExceeded}
		model := battle.NewModel(recorder, zerolog.Nop(), battle.WithRoll(func() float64 { return 0.9 }))
		So(model.PrepCombatant(sushi()), ShouldBeNil)
		So(model.PrepCombatant(burger()), ShouldBeNil)

		Convey("When the battle runs", func() {
			_, err := model.Battle(context.Background())

			Convey("Then the error surfaces and the roster is preserved", func() {
				So(err, ShouldNotBeNil)
				So(model.Combatants(), ShouldHaveLength, 2)
			})
		})
	})
}
