package queries

import (
	"context"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/internal/ports"
	"github.com/pitosalas/blogbridge-sub012/pkg/decorator"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	DescribePropertiesQuery struct{}

	// PropertyDescription is what a query editor needs to offer one property.
	PropertyDescription struct {
		Descriptor   string                 `json:"descriptor"`
		Name         string                 `json:"name"`
		Type         string                 `json:"type"`
		DefaultValue string                 `json:"defaultValue"`
		Operations   []OperationDescription `json:"operations"`
	}

	OperationDescription struct {
		Descriptor string `json:"descriptor"`
		Name       string `json:"name"`
	}

	DescribePropertiesQueryHandler = decorator.QueryHandler[DescribePropertiesQuery, []PropertyDescription]

	describePropertiesQueryHandler struct {
		smartFeedsService ports.SmartFeedsService
	}
)

func NewDescribePropertiesQueryHandler(
	svc ports.SmartFeedsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) DescribePropertiesQueryHandler {
	return decorator.ApplyQueryDecorators[DescribePropertiesQuery, []PropertyDescription](
		describePropertiesQueryHandler{smartFeedsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h describePropertiesQueryHandler) Execute(_ context.Context, _ DescribePropertiesQuery) ([]PropertyDescription, error) {
	properties := h.smartFeedsService.Describe()
	descriptions := make([]PropertyDescription, 0, len(properties))

	for _, p := range properties {
		descriptions = append(descriptions, describeProperty(p))
	}

	return descriptions, nil
}

func describeProperty(p query.Property) PropertyDescription {
	ops := p.Operations()

	description := PropertyDescription{
		Descriptor:   p.Descriptor(),
		Name:         p.Name(),
		Type:         p.Type().String(),
		DefaultValue: p.DefaultValue(),
		Operations:   make([]OperationDescription, 0, len(ops)),
	}

	for _, op := range ops {
		description.Operations = append(description.Operations, OperationDescription{
			Descriptor: op.Descriptor(),
			Name:       op.Name(),
		})
	}

	return description
}
