package component

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidState = errors.New("component: invalid state")

// MovementFlag is a single movement flag. Several can be held at once in a
// MovementState.
type MovementFlag uint16

const (
	Idle MovementFlag = 1 << iota
	Moving
	Falling
	Landing
	Jumping
	Dashing
	WallSticking
	WallSliding
)

var movementNames = []struct {
	flag MovementFlag
	name string
}{
	{Idle, "Idle"},
	{Moving, "Moving"},
	{Falling, "Falling"},
	{Landing, "Landing"},
	{Jumping, "Jumping"},
	{Dashing, "Dashing"},
	{WallSticking, "WallSticking"},
	{WallSliding, "WallSliding"},
}

// movementExclusive pairs flags that can never be held together.
var movementExclusive = [][2]MovementFlag{
	{Idle, Moving},
	{Falling, Landing},
	{WallSticking, WallSliding},
}

// MovementState is the set of movement flags of a body. The zero value is
// the empty set.
type MovementState struct {
	bits MovementFlag
}

func NewMovementState(flags ...MovementFlag) MovementState {
	var s MovementState
	for _, f := range flags {
		s.Add(f)
	}
	return s
}

func (s MovementState) Has(f MovementFlag) bool {
	return f != 0 && s.bits&f == f
}

// HasAny reports whether at least one flag of f is held.
func (s MovementState) HasAny(f MovementFlag) bool {
	return s.bits&f != 0
}

// Add sets f and drops any flag that is mutually exclusive with it.
func (s *MovementState) Add(f MovementFlag) {
	for _, pair := range movementExclusive {
		if f&pair[0] != 0 {
			s.bits &^= pair[1]
		}
		if f&pair[1] != 0 {
			s.bits &^= pair[0]
		}
	}
	s.bits |= f
}

func (s *MovementState) Remove(f MovementFlag) {
	s.bits &^= f
}

func (s *MovementState) Set(f MovementFlag, on bool) {
	if on {
		s.Add(f)
	} else {
		s.Remove(f)
	}
}

// Validate checks the mutual exclusions. Add never produces an invalid set,
// so a failure here means the bits were corrupted elsewhere.
func (s MovementState) Validate() error {
	for _, pair := range movementExclusive {
		if s.bits&pair[0] != 0 && s.bits&pair[1] != 0 {
			return fmt.Errorf("%w: %s", ErrInvalidState, MovementState{bits: pair[0] | pair[1]})
		}
	}
	return nil
}

func (s MovementState) String() string {
	var parts []string
	for _, n := range movementNames {
		if s.bits&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, "|") + "}"
}

// ConditionFlag is a single condition flag of a body.
type ConditionFlag uint8

const (
	Normal ConditionFlag = 1 << iota
	Hit
	Recovering
	RestrictedAttacking
	FreeAttacking
)

var conditionNames = []struct {
	flag ConditionFlag
	name string
}{
	{Normal, "Normal"},
	{Hit, "Hit"},
	{Recovering, "Recovering"},
	{RestrictedAttacking, "RestrictedAttacking"},
	{FreeAttacking, "FreeAttacking"},
}

// ConditionState is the set of condition flags of a body. Normal is never
// stored: it is held exactly when neither Hit nor Recovering is, so the zero
// value is {Normal}.
type ConditionState struct {
	bits ConditionFlag
}

func (s ConditionState) bitsWithNormal() ConditionFlag {
	b := s.bits &^ Normal
	if b&(Hit|Recovering) == 0 {
		b |= Normal
	}
	return b
}

func (s ConditionState) Has(f ConditionFlag) bool {
	return f != 0 && s.bitsWithNormal()&f == f
}

// Add sets f. Adding Hit drops Recovering and the other way around; adding
// Normal clears both.
func (s *ConditionState) Add(f ConditionFlag) {
	if f&Normal != 0 {
		s.bits &^= Hit | Recovering
	}
	if f&Hit != 0 {
		s.bits &^= Recovering
	}
	if f&Recovering != 0 {
		s.bits &^= Hit
	}
	s.bits |= f &^ Normal
	if f&Hit != 0 && f&Recovering != 0 {
		// both requested at once: the later phase wins
		s.bits &^= Hit
	}
}

// Remove clears f. Removing Normal has no effect; add Hit or Recovering
// instead.
func (s *ConditionState) Remove(f ConditionFlag) {
	s.bits &^= f &^ Normal
}

func (s *ConditionState) Set(f ConditionFlag, on bool) {
	if on {
		s.Add(f)
	} else {
		s.Remove(f)
	}
}

// InputRestricted reports whether player intent must be ignored.
func (s ConditionState) InputRestricted() bool {
	return s.bits&(Hit|RestrictedAttacking) != 0
}

func (s ConditionState) Validate() error {
	if s.bits&Hit != 0 && s.bits&Recovering != 0 {
		return fmt.Errorf("%w: Hit and Recovering together", ErrInvalidState)
	}
	return nil
}

func (s ConditionState) String() string {
	b := s.bitsWithNormal()
	var parts []string
	for _, n := range conditionNames {
		if b&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return "{" + strings.Join(parts, "|") + "}"
}
