package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"wbs-desktop/internal/domain"
)

// CommandHandler executes one command with its decoded-on-demand payload.
// The result is marshalled to JSON by the transport.
type CommandHandler func(ctx context.Context, payload json.RawMessage) (any, error)

// Command pairs a payload schema with its handler.
type Command struct {
	Name    string
	Schema  *jsonschema.Schema
	Handler CommandHandler
}

// Commands is the name-to-handler table used by transports that do not
// bind facade methods directly.
type Commands struct {
	byName map[string]Command
}

const (
	pathSchema = `{
		"type": "object",
		"properties": {"path": {"type": "string"}},
		"required": ["path"]
	}`
	emptySchema = `{"type": "object"}`
)

var commandSchemas = map[string]string{
	CmdSaveFile: `{
		"type": "object",
		"properties": {
			"path": {"type": "string"},
			"content": {
				"oneOf": [
					{"type": "array", "items": {"type": "integer", "minimum": 0, "maximum": 255}},
					{"type": "string"}
				]
			}
		},
		"required": ["path", "content"]
	}`,
	CmdReadFile:        pathSchema,
	CmdGetModifiedTime: pathSchema,
	CmdPickSavePath:    emptySchema,
	CmdPickOpenPath:    emptySchema,
	CmdGetInitialFile:  emptySchema,
	CmdShowMessage: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"message": {"type": "string"},
			"kind": {"type": "string"}
		},
		"required": ["message"]
	}`,
	CmdSetWindowTitle: `{
		"type": "object",
		"properties": {"title": {"type": "string"}},
		"required": ["title"]
	}`,
	CmdExitApp: `{
		"type": "object",
		"properties": {"code": {"type": "integer"}}
	}`,
}

type savePayload struct {
	Path    string         `json:"path"`
	Content domain.Content `json:"content"`
}

type pathPayload struct {
	Path string `json:"path"`
}

type messagePayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type titlePayload struct {
	Title string `json:"title"`
}

type exitPayload struct {
	Code int `json:"code"`
}

// NewCommands builds the command table over f.
func NewCommands(f *Facade) (*Commands, error) {
	handlers := map[string]CommandHandler{
		CmdSaveFile: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p savePayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, invalidPayload(CmdSaveFile, err)
			}
			return nil, f.SaveFile(ctx, p.Path, p.Content)
		},
		CmdReadFile: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p pathPayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, invalidPayload(CmdReadFile, err)
			}
			return f.ReadFile(ctx, p.Path)
		},
		CmdGetModifiedTime: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p pathPayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, invalidPayload(CmdGetModifiedTime, err)
			}
			return f.ModifiedTime(ctx, p.Path)
		},
		CmdPickSavePath: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return optional(f.PickSavePath(ctx)), nil
		},
		CmdPickOpenPath: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return optional(f.PickOpenPath(ctx)), nil
		},
		CmdGetInitialFile: func(_ context.Context, _ json.RawMessage) (any, error) {
			return optional(f.InitialFile()), nil
		},
		CmdShowMessage: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p messagePayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, invalidPayload(CmdShowMessage, err)
			}
			return nil, f.ShowMessage(ctx, p.Title, p.Message, domain.ParseMessageKind(p.Kind))
		},
		CmdSetWindowTitle: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p titlePayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, invalidPayload(CmdSetWindowTitle, err)
			}
			return nil, f.SetWindowTitle(ctx, p.Title)
		},
		CmdExitApp: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p exitPayload
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, invalidPayload(CmdExitApp, err)
			}
			return nil, f.Exit(ctx, p.Code)
		},
	}

	c := &Commands{byName: make(map[string]Command, len(handlers))}
	for name, h := range handlers {
		schema, err := compileSchema(name, commandSchemas[name])
		if err != nil {
			return nil, err
		}
		c.byName[name] = Command{Name: name, Schema: schema, Handler: h}
	}
	return c, nil
}

func compileSchema(name, raw string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name+".json", strings.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource for %q: %w", name, err)
	}
	schema, err := compiler.Compile(name + ".json")
	if err != nil {
		return nil, fmt.Errorf("compile schema for %q: %w", name, err)
	}
	return schema, nil
}

// Names returns the registered command names in sorted order.
func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the command registered under name.
func (c *Commands) Lookup(name string) (Command, bool) {
	cmd, ok := c.byName[name]
	return cmd, ok
}

// Dispatch validates payload against the command's schema and runs it.
// An empty payload is treated as an empty object.
func (c *Commands) Dispatch(ctx context.Context, name string, payload json.RawMessage) (any, error) {
	cmd, ok := c.byName[name]
	if !ok {
		return nil, domain.NewDomainError("Commands.Dispatch", domain.ErrRPCMethodNotFound, name)
	}

	if len(payload) == 0 || string(payload) == "null" {
		payload = json.RawMessage(`{}`)
	}

	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, invalidPayload(name, err)
	}
	if err := cmd.Schema.Validate(v); err != nil {
		return nil, invalidPayload(name, err)
	}

	return cmd.Handler(ctx, payload)
}

func invalidPayload(name string, err error) error {
	return domain.NewDomainError(name, domain.ErrRPCInvalidPayload, err.Error())
}

// optional converts a (value, ok) pair to a nullable JSON string.
func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
