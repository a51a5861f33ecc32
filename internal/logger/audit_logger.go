// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for recommendations and
// settlements.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRecommendation logs one emitted betting recommendation.
func (al *AuditLogger) LogRecommendation(recID, league, fixtureID, patternName, verdict string, confidence, riskAdjusted, threshold float64, emittedAt time.Time) {
	al.WithFields(logrus.Fields{
		"recommendation_id": recID,
		"league":            league,
		"fixture_id":        fixtureID,
		"pattern":           patternName,
		"verdict":           verdict,
		"confidence":        confidence,
		"risk_adjusted":     riskAdjusted,
		"threshold":         threshold,
		"timestamp":         emittedAt.Unix(),
	}).Info("Recommendation recorded")
}

// LogNoBet logs a match where no pattern cleared its threshold.
func (al *AuditLogger) LogNoBet(league, fixtureID, reason string) {
	al.WithFields(logrus.Fields{
		"league":     league,
		"fixture_id": fixtureID,
		"reason":     reason,
	}).Info("No bet recorded")
}

// LogSettlement logs a settled bet against its actual outcome.
func (al *AuditLogger) LogSettlement(recID, patternName string, won bool, pnl float64) {
	al.WithFields(logrus.Fields{
		"recommendation_id": recID,
		"pattern":           patternName,
		"won":               won,
		"pnl":               pnl,
	}).Info("Settlement recorded")
}

// LogRiskLimitEvent logs a bankroll limit trigger.
func (al *AuditLogger) LogRiskLimitEvent(eventType, reason string, bankroll float64) {
	al.WithFields(logrus.Fields{
		"event_type": eventType,
		"reason":     reason,
		"bankroll":   bankroll,
	}).Warn("Risk limit event recorded")
}
