package languageServer

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/c64tools/asmlens/config"
)

type clientHandler struct {
	diagnostics chan PublishDiagnosticsParams
}

func (c *clientHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
		return
	}
	params := PublishDiagnosticsParams{}
	if err := json.Unmarshal(*req.Params, &params); err == nil {
		c.diagnostics <- params
	}
}

func connect(t *testing.T) (*jsonrpc2.Conn, *clientHandler) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	ctx := context.Background()

	server := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}), newHandler(config.Default()))
	client := &clientHandler{diagnostics: make(chan PublishDiagnosticsParams, 4)}
	conn := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), client)

	t.Cleanup(func() {
		conn.Close()
		server.Close()
	})
	return conn, client
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	conn, _ := connect(t)

	result := InitializeResult{}
	params := InitializeParams{InitializationOptions: &InitializationOptions{Dialect: "kick"}}
	if err := conn.Call(context.Background(), "initialize", params, &result); err != nil {
		t.Fatalf("Expected initialize to succeed, got %v", err)
	}

	caps := result.Capabilities
	if caps.TextDocumentSync != 1 || !caps.HoverProvider || !caps.DefinitionProvider || !caps.ReferencesProvider {
		t.Errorf("Expected full sync with hover, definition and references, got %+v", caps)
	}
	if caps.SemanticTokensProvider == nil || len(caps.SemanticTokensProvider.Legend.TokenTypes) != len(semanticTokenTypes) {
		t.Errorf("Expected the semantic token legend to be advertised")
	}
	if result.ServerInfo.Name != serverName {
		t.Errorf("Expected server name %s, got %s", serverName, result.ServerInfo.Name)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	conn, client := connect(t)
	ctx := context.Background()
	uri := DocumentUri("file:///work/main.a")

	open := DidOpenTextDocumentParams{TextDocument: TextDocumentItem{URI: uri, LanguageID: "asm", Version: 1, Text: "start\n!text \"oops\n"}}
	if err := conn.Notify(ctx, "textDocument/didOpen", open); err != nil {
		t.Fatalf("Expected didOpen to be sent, got %v", err)
	}

	select {
	case published := <-client.diagnostics:
		if published.URI != uri || len(published.Diagnostics) != 1 {
			t.Errorf("Expected 1 diagnostic for %s, got %d for %s", uri, len(published.Diagnostics), published.URI)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Expected diagnostics to be published")
	}

	change := DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "start\nCOUNT = 3\n"}},
	}
	if err := conn.Notify(ctx, "textDocument/didChange", change); err != nil {
		t.Fatalf("Expected didChange to be sent, got %v", err)
	}

	symbols := []DocumentSymbol{}
	if err := conn.Call(ctx, "textDocument/documentSymbol", DocumentSymbolParams{TextDocument: TextDocumentIdentifier{URI: uri}}, &symbols); err != nil {
		t.Fatalf("Expected documentSymbol to succeed, got %v", err)
	}
	if len(symbols) != 2 || symbols[0].Name != "start" || symbols[1].Name != "COUNT" {
		t.Errorf("Expected start and COUNT, got %+v", symbols)
	}

	report := DocumentDiagnosticsReport{}
	if err := conn.Call(ctx, "textDocument/diagnostic", DocumentDiagnosticsParams{TextDocument: TextDocumentIdentifier{URI: uri}}, &report); err != nil {
		t.Fatalf("Expected diagnostic to succeed, got %v", err)
	}
	if report.Kind != "full" || len(report.Items) != 0 {
		t.Errorf("Expected an empty full report, got %+v", report)
	}

	if err := conn.Notify(ctx, "textDocument/didClose", DidCloseTextDocumentParams{TextDocument: TextDocumentIdentifier{URI: uri}}); err != nil {
		t.Fatalf("Expected didClose to be sent, got %v", err)
	}
	var hover *Hover
	params := TextDocumentPositionParams{TextDocument: TextDocumentIdentifier{URI: uri}, Position: pos(0, 1)}
	if err := conn.Call(ctx, "textDocument/hover", params, &hover); err != nil {
		t.Fatalf("Expected hover to succeed, got %v", err)
	}
	if hover != nil {
		t.Errorf("Expected no hover for a closed document, got %+v", hover)
	}
}

func TestUnknownMethodAndBadParams(t *testing.T) {
	conn, _ := connect(t)
	ctx := context.Background()

	err := conn.Call(ctx, "workspace/unknown", nil, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("Expected a method not found error, got %v", err)
	}

	err = conn.Call(ctx, "textDocument/hover", nil, nil)
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeInvalidParams {
		t.Errorf("Expected an invalid params error, got %v", err)
	}

	if err := conn.Call(ctx, "shutdown", nil, nil); err != nil {
		t.Errorf("Expected shutdown to succeed, got %v", err)
	}
}
