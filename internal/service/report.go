package service

import (
	"math"

	"asha-platform/internal/domain"
)

const (
	ScoreClassHigh   = "high"
	ScoreClassMedium = "medium"
	ScoreClassLow    = "low"
)

// SessionReport resume los puntajes de una sesión. Se recalcula siempre a
// partir de las respuestas almacenadas, nunca se persiste.
type SessionReport struct {
	Technical          int    `json:"technical"`
	Communication      int    `json:"communication"`
	Confidence         int    `json:"confidence"`
	Clarity            int    `json:"clarity"`
	TechnicalClass     string `json:"technical_class"`
	CommunicationClass string `json:"communication_class"`
	ConfidenceClass    string `json:"confidence_class"`
	ClarityClass       string `json:"clarity_class"`
	ResponseCount      int    `json:"response_count"`
}

// SummarizeSession calcula el reporte agregado de una sesión.
//
// Para confidence y clarity un valor 0 se trata como "no medido" y queda fuera
// del promedio. Eso hereda la ambigüedad del dato de origen (un 0% legítimo es
// indistinguible de la ausencia de medición); cambiarlo alteraría los
// resultados observables, así que se conserva.
func SummarizeSession(session domain.InterviewSession) SessionReport {
	var technical, communication []int
	var confidence, clarity []int

	for _, resp := range session.Responses {
		technical = append(technical, resp.Scores.Technical)
		communication = append(communication, resp.Scores.Communication)
		if resp.NonVerbalMetrics.Confidence > 0 {
			confidence = append(confidence, resp.NonVerbalMetrics.Confidence)
		}
		if resp.VoiceMetrics.Clarity > 0 {
			clarity = append(clarity, resp.VoiceMetrics.Clarity)
		}
	}

	report := SessionReport{
		Technical:     roundMean(technical),
		Communication: roundMean(communication),
		Confidence:    roundMean(confidence),
		Clarity:       roundMean(clarity),
		ResponseCount: len(session.Responses),
	}
	report.TechnicalClass = ScoreClass(report.Technical)
	report.CommunicationClass = ScoreClass(report.Communication)
	report.ConfidenceClass = ScoreClass(report.Confidence)
	report.ClarityClass = ScoreClass(report.Clarity)
	return report
}

// ScoreClass clasifica un puntaje 0-100 en high/medium/low. Los límites son
// inclusivos en 80 y 60.
func ScoreClass(score int) string {
	switch {
	case score >= 80:
		return ScoreClassHigh
	case score >= 60:
		return ScoreClassMedium
	default:
		return ScoreClassLow
	}
}

// roundMean promedia con redondeo estándar al entero más cercano; 0 sin datos.
func roundMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
