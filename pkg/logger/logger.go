package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with domain helpers
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter creates a logger for the given writer and level name.
// Text output is used in gin debug mode, JSON otherwise.
func NewWithWriter(w io.Writer, levelName string) *Logger {
	level := getLogLevel(levelName)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("request_id", requestID))}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("user_id", userID))}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogAircraftCreated logs a new aircraft and the number of seats generated for it
func (l *Logger) LogAircraftCreated(ctx context.Context, aircraftID string, seats int) {
	l.Logger.InfoContext(ctx,
		"Aircraft Created",
		slog.String("aircraft_id", aircraftID),
		slog.Int("seats_generated", seats),
	)
}

// LogReservationsAllocated logs a committed allocation batch
func (l *Logger) LogReservationsAllocated(ctx context.Context, flightID, userID string, codes []string) {
	l.Logger.InfoContext(ctx,
		"Reservations Allocated",
		slog.String("flight_id", flightID),
		slog.String("user_id", userID),
		slog.Any("codes", codes),
	)
}

// LogSeatCollision logs an allocation rejected because a seat was taken
func (l *Logger) LogSeatCollision(ctx context.Context, flightID, seatNumber string) {
	l.Logger.WarnContext(ctx,
		"Seat Collision",
		slog.String("flight_id", flightID),
		slog.String("seat", seatNumber),
	)
}

// LogReservationConfirmed logs a confirmation together with the issued ticket
func (l *Logger) LogReservationConfirmed(ctx context.Context, reservationID, ticketCode, actorID string) {
	l.Logger.InfoContext(ctx,
		"Reservation Confirmed",
		slog.String("reservation_id", reservationID),
		slog.String("ticket_code", ticketCode),
		slog.String("actor_id", actorID),
	)
}

// LogReservationCancelled logs a cancellation
func (l *Logger) LogReservationCancelled(ctx context.Context, reservationID, actorID string) {
	l.Logger.InfoContext(ctx,
		"Reservation Cancelled",
		slog.String("reservation_id", reservationID),
		slog.String("actor_id", actorID),
	)
}

// LogTicketIssued logs a newly minted ticket
func (l *Logger) LogTicketIssued(ctx context.Context, ticketID, reservationID string) {
	l.Logger.InfoContext(ctx,
		"Ticket Issued",
		slog.String("ticket_id", ticketID),
		slog.String("reservation_id", reservationID),
	)
}

// LogTicketDeliveryFailed logs a delivery that aborted a confirmation
func (l *Logger) LogTicketDeliveryFailed(ctx context.Context, ticketID, reason string) {
	l.Logger.ErrorContext(ctx,
		"Ticket Delivery Failed",
		slog.String("ticket_id", ticketID),
		slog.String("reason", reason),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
