package domain

import (
	"fmt"
	"regexp"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MaxInnings caps recordable inning numbers. Extra-inning games may run long
// but league play stops at 12.
const MaxInnings = 12

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateName checks a player or team name field.
func ValidateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(name) > 100 {
		return fmt.Errorf("%s exceeds 100 characters", field)
	}
	return nil
}

// ValidateLeagueAge checks that an age is plausible for youth play. Ages
// outside the policy table are stored fine (rules simply skip such players),
// but negative or absurd values are data-entry mistakes.
func ValidateLeagueAge(age int) error {
	if age < 4 || age > 18 {
		return fmt.Errorf("league age %d out of range 4-18", age)
	}
	return nil
}

// ValidateInning checks an inning number.
func ValidateInning(inning int) error {
	if inning < 1 || inning > MaxInnings {
		return fmt.Errorf("inning %d out of range 1-%d", inning, MaxInnings)
	}
	return nil
}

// ValidatePosition checks a tracked position.
func ValidatePosition(p compliance.Position) error {
	if p != compliance.PositionPitcher && p != compliance.PositionCatcher {
		return fmt.Errorf("position must be pitcher or catcher, got %q", p)
	}
	return nil
}

// ValidatePitchCounts enforces the appearance invariant: the penultimate
// batter count can never exceed the final count.
func ValidatePitchCounts(finalCount, penultimateCount int) error {
	if finalCount < 0 || penultimateCount < 0 {
		return fmt.Errorf("pitch counts must be non-negative")
	}
	if penultimateCount > finalCount {
		return fmt.Errorf("penultimate batter count %d exceeds final pitch count %d", penultimateCount, finalCount)
	}
	return nil
}
