// Package observation holds the Observation value type: a single
// dated data point, tagged over four kinds (cervical-mucus, BBT, OPK,
// symptom). Each kind's shape is fixed at construction and never
// mutated, removing the need for a class hierarchy.
package observation

import (
	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
)

// Kind identifies which variant of observation a record carries.
type Kind string

const (
	KindCervicalMucus Kind = "cervical_mucus"
	KindBBT           Kind = "bbt"
	KindOPK           Kind = "opk"
	KindSymptom       Kind = "symptom"
)

// Cervical-mucus canonical vocabulary.
type CMValue string

const (
	CMDry      CMValue = "dry"
	CMSticky   CMValue = "sticky"
	CMCreamy   CMValue = "creamy"
	CMWatery   CMValue = "watery"
	CMEggWhite CMValue = "egg-white"
	CMSpotting CMValue = "spotting"
	CMUnknown  CMValue = "unknown"
)

// OPK canonical vocabulary (post-normalization, pre-CSV-collapse).
type OPKValue string

const (
	OPKNegative       OPKValue = "negative"
	OPKAlmostPositive OPKValue = "almost-positive"
	OPKPositive       OPKValue = "positive"
	OPKInvalid        OPKValue = "invalid"
)

// Severity is the optional symptom severity scale.
type Severity int

const (
	SeverityMild     Severity = 1
	SeverityModerate Severity = 2
	SeveritySevere   Severity = 3
)

// Observation is a single dated data point. Exactly the fields for
// its Kind are populated; the rest are zero.
type Observation struct {
	ID        core.ObservationID `json:"id"`
	Date      civildate.Date     `json:"date"`
	Kind      Kind               `json:"kind"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt core.Timestamp     `json:"created_at"`
	UpdatedAt core.Timestamp     `json:"updated_at"`

	// Populated when Kind == KindCervicalMucus.
	CMValue CMValue `json:"cm_value,omitempty"`

	// Populated when Kind == KindBBT.
	Temperature float64 `json:"temperature,omitempty"`
	TimeOfDay   string  `json:"time_of_day,omitempty"`

	// Populated when Kind == KindOPK.
	OPKValue OPKValue `json:"opk_value,omitempty"`

	// Populated when Kind == KindSymptom.
	SymptomTag string   `json:"symptom_tag,omitempty"`
	Severity   Severity `json:"severity,omitempty"`
}

// Validate checks that the kind tag matches the value populated on
// the observation.
func (o Observation) Validate() error {
	switch o.Kind {
	case KindCervicalMucus:
		if o.CMValue == "" {
			return core.NewValidationError(core.ErrInvalidObservation, "cm_value", "required for cervical_mucus observation")
		}
	case KindBBT:
		if o.Temperature == 0 {
			return core.NewValidationError(core.ErrInvalidObservation, "temperature", "required for bbt observation")
		}
	case KindOPK:
		if o.OPKValue == "" {
			return core.NewValidationError(core.ErrInvalidObservation, "opk_value", "required for opk observation")
		}
	case KindSymptom:
		if o.SymptomTag == "" {
			return core.NewValidationError(core.ErrInvalidObservation, "symptom_tag", "required for symptom observation")
		}
	default:
		return core.NewValidationError(core.ErrInvalidObservation, "kind", "unrecognized observation kind")
	}
	return nil
}

// NewCervicalMucus constructs a cervical-mucus observation.
func NewCervicalMucus(date civildate.Date, value CMValue, now core.Timestamp) Observation {
	return Observation{
		ID: core.NewObservationID(), Date: date, Kind: KindCervicalMucus,
		CMValue: value, CreatedAt: now, UpdatedAt: now,
	}
}

// NewBBT constructs a BBT observation.
func NewBBT(date civildate.Date, tempF float64, timeOfDay string, now core.Timestamp) Observation {
	return Observation{
		ID: core.NewObservationID(), Date: date, Kind: KindBBT,
		Temperature: tempF, TimeOfDay: timeOfDay, CreatedAt: now, UpdatedAt: now,
	}
}

// NewOPK constructs an OPK observation.
func NewOPK(date civildate.Date, value OPKValue, now core.Timestamp) Observation {
	return Observation{
		ID: core.NewObservationID(), Date: date, Kind: KindOPK,
		OPKValue: value, CreatedAt: now, UpdatedAt: now,
	}
}

// NewSymptom constructs a symptom observation.
func NewSymptom(date civildate.Date, tag string, severity Severity, now core.Timestamp) Observation {
	return Observation{
		ID: core.NewObservationID(), Date: date, Kind: KindSymptom,
		SymptomTag: tag, Severity: severity, CreatedAt: now, UpdatedAt: now,
	}
}
