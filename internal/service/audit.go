package service

import "go.uber.org/zap"

// AuditLogger records state-changing operations for a program. Calls are
// fire-and-forget; implementations must never fail the calling operation.
type AuditLogger interface {
	Log(programID uint, message string)
}

// ZapAuditLogger writes audit entries through the global zap logger.
type ZapAuditLogger struct{}

func NewZapAuditLogger() *ZapAuditLogger {
	return &ZapAuditLogger{}
}

func (l *ZapAuditLogger) Log(programID uint, message string) {
	zap.L().Info("audit",
		zap.Uint("program_id", programID),
		zap.String("message", message),
	)
}
