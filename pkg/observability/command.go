package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	commandSpanPrefix = "rbtree.cli."
	attrCommand       = "cli.command"
)

// CommandSpanName is the name of the span wrapping one rbtree subcommand.
func CommandSpanName(command string) string {
	return commandSpanPrefix + command
}

// StartCommand opens the span for one subcommand run.
func StartCommand(ctx context.Context, tracer trace.Tracer, command string) (context.Context, trace.Span) {
	return tracer.Start(ctx, CommandSpanName(command),
		trace.WithAttributes(attribute.String(attrCommand, command)))
}

// EndCommand marks span failed when err is non-nil and ends it.
func EndCommand(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
