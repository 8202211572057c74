package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerBucketsResource(srv, svc)
	registerKindsResource(srv, svc)
	registerTaskTemplate(srv, svc)
	registerActivityTemplate(srv, svc)
}

func registerBucketsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"daybook://buckets",
		"Task Buckets",
		mcp.WithResourceDescription("Tasks grouped into today, yesterday and earlier."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		bs, err := svc.Buckets(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, bs)
	})
}

func registerKindsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"daybook://activity",
		"Trackers",
		mcp.WithResourceDescription("Every tracker with logged activity."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		kinds, err := svc.Kinds(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"kinds": kinds,
			"count": len(kinds),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://tasks/{id}",
		"Task Details",
		mcp.WithTemplateDescription("Detailed information about a single task."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("task id is required")
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"task": dto})
	})
}

func registerActivityTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://activity/{kind}",
		"Tracker Log",
		mcp.WithTemplateDescription("Records, streak and stats for one tracker."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		kind, _ := request.Params.Arguments["kind"].(string)
		if kind == "" {
			return nil, fmt.Errorf("tracker kind is required")
		}

		records, err := svc.Activity(ctx, kind, "", "")
		if err != nil {
			return nil, err
		}
		st, err := svc.Streak(ctx, kind)
		if err != nil {
			return nil, err
		}
		sum, err := svc.Stats(ctx, kind)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"kind":    kind,
			"records": records,
			"streak":  st.Result,
			"stats":   sum,
		}
		return encodeResourceJSON(request.Params.URI, payload)
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
