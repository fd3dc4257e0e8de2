package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerHabitsResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerHabitsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"arc://habits",
		"Habits",
		mcp.WithResourceDescription("All tracked habits with their first tracked day."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		habits, err := svc.ListHabits(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"habits": habits,
			"count":  len(habits),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"arc://days/{day}",
		"Day Checklist",
		mcp.WithTemplateDescription("Habit statuses for a day such as 2025-01-31 or today."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day, _ := request.Params.Arguments["day"].(string)
		if day == "" {
			return nil, fmt.Errorf("day is required")
		}

		dto, err := svc.DayProgress(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"day": dto})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
