package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p PositionPayload) Validate() error {
	if p.Row < 0 || p.Col < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

func (p UnitPayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	return nil
}

func (p ExperiencePayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

func (p UnlockPayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	if p.Row < 0 || p.Col < 0 {
		return errors.New("tile cannot be negative")
	}
	return nil
}

func (p UpgradePayload) Validate() error {
	if p.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

func (p PulsePayload) Validate() error {
	if p.Side == "" {
		return errors.New("side is required")
	}
	if p.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}
