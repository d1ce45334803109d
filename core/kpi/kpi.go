package kpi

import (
	"encoding/json"
	"math"
	"strconv"
)

// Row is one raw record from a KPI partition, keyed by source column name.
// Every field is optional at the source; Coerce flattens whatever is there
// into a float64.
type Row map[string]any

// Coerce converts a raw field value to float64 with "never block rendering"
// semantics: nil, missing, NaN, and non-numeric strings all become 0, while
// numeric strings parse. A legitimate 0 is indistinguishable from "missing";
// that flattening is accepted, not a bug.
func Coerce(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Workforce is the normalized headcount snapshot for one (company, period).
type Workforce struct {
	EffectifTotal     float64 `json:"effectifTotal"`
	EtpTotal          float64 `json:"etpTotal"`
	Entrees           float64 `json:"entrees"`
	Sorties           float64 `json:"sorties"`
	TauxTurnover      float64 `json:"tauxTurnover"`
	PctCdi            float64 `json:"pctCdi"`
	AgeMoyen          float64 `json:"ageMoyen"`
	AncienneteMoyenne float64 `json:"ancienneteMoyenne"`
	PctHommes         float64 `json:"pctHommes"`
	PctFemmes         float64 `json:"pctFemmes"`
}

// Payroll is the normalized payroll-cost snapshot for one (company, period).
type Payroll struct {
	MasseSalariale   float64 `json:"masseSalariale"`
	CoutTotal        float64 `json:"coutTotal"`
	SalaireBaseMoyen float64 `json:"salaireBaseMoyen"`
	CoutMoyenParEtp  float64 `json:"coutMoyenParEtp"`
	PartVariable     float64 `json:"partVariable"`
	TauxCharges      float64 `json:"tauxCharges"`
}

// Absence is the normalized absenteeism snapshot for one (company, period).
type Absence struct {
	TauxAbsenteisme   float64 `json:"tauxAbsenteisme"`
	JoursAbsence      float64 `json:"joursAbsence"`
	NbAbsencesTotal   float64 `json:"nbAbsencesTotal"`
	DureeMoyenne      float64 `json:"dureeMoyenne"`
	NbSalariesAbsents float64 `json:"nbSalariesAbsents"`
	JoursMaladie      float64 `json:"joursMaladie"`
}

// NewWorkforce normalizes a raw workforce row. Returns nil for a nil row
// (no data for the period).
func NewWorkforce(row Row) *Workforce {
	if row == nil {
		return nil
	}
	return &Workforce{
		EffectifTotal:     Coerce(row["effectif_fin_mois"]),
		EtpTotal:          Coerce(row["etp_fin_mois"]),
		Entrees:           Coerce(row["entrees"]),
		Sorties:           Coerce(row["sorties"]),
		TauxTurnover:      Coerce(row["taux_turnover"]),
		PctCdi:            Coerce(row["pct_cdi"]),
		AgeMoyen:          Coerce(row["age_moyen"]),
		AncienneteMoyenne: Coerce(row["anciennete_moyenne_mois"]),
		PctHommes:         Coerce(row["pct_hommes"]),
		PctFemmes:         Coerce(row["pct_femmes"]),
	}
}

// NewPayroll normalizes a raw payroll row. Returns nil for a nil row.
func NewPayroll(row Row) *Payroll {
	if row == nil {
		return nil
	}
	return &Payroll{
		MasseSalariale:   Coerce(row["masse_salariale_brute"]),
		CoutTotal:        Coerce(row["cout_total_employeur"]),
		SalaireBaseMoyen: Coerce(row["salaire_base_moyen"]),
		CoutMoyenParEtp:  Coerce(row["cout_moyen_par_etp"]),
		PartVariable:     Coerce(row["part_variable"]),
		TauxCharges:      Coerce(row["taux_charges"]),
	}
}

// NewAbsence normalizes a raw absence row. Returns nil for a nil row.
func NewAbsence(row Row) *Absence {
	if row == nil {
		return nil
	}
	return &Absence{
		TauxAbsenteisme:   Coerce(row["taux_absenteisme"]),
		JoursAbsence:      Coerce(row["jours_absence"]),
		NbAbsencesTotal:   Coerce(row["nb_absences_total"]),
		DureeMoyenne:      Coerce(row["duree_moyenne"]),
		NbSalariesAbsents: Coerce(row["nb_salaries_absents"]),
		JoursMaladie:      Coerce(row["jours_maladie"]),
	}
}

// Dataset groups the three partition snapshots returned by one fetch cycle.
// A nil partition means "no row for the period", which is not an error.
type Dataset struct {
	Workforce  *Workforce `json:"workforce"`
	Financials *Payroll   `json:"financials"`
	Absences   *Absence   `json:"absences"`
}
