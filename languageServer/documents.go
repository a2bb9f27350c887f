package languageServer

import (
	"context"
	"errors"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/parser"
	"github.com/c64tools/asmlens/util"
)

var errNoParams = errors.New("missing parameters")

func (h *handler) dialectFor(uri DocumentUri) grammar.Dialect {
	if h.override != nil {
		return *h.override
	}
	return h.conf.DialectFor(string(uri))
}

// reparse starts a background parse of the document, cancelling the one still
// running for an older text. Only a complete parse of the current text is
// kept; diagnostics are published once it is stored.
func (h *handler) reparse(conn *jsonrpc2.Conn, uri DocumentUri) {
	h.mu.Lock()
	doc, ok := h.documents[string(uri)]
	if !ok {
		h.mu.Unlock()
		return
	}
	if doc.cancel != nil {
		doc.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	doc.cancel = cancel
	text, generation, dialect, version := doc.item.Text, doc.generation, doc.dialect, doc.item.Version
	h.mu.Unlock()

	go func() {
		defer cancel()
		ast := parser.Parse(ctx, text, string(uri), dialect)
		if ast.Partial {
			util.LogF("%s: parse of %s superseded", serverName, uri)
			return
		}
		if !h.store(uri, generation, ast) {
			return
		}

		util.LogF("%s: parsed %s: %d tokens, %d statements", serverName, uri, len(ast.Tokens), len(ast.Statements))
		conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
			URI:         uri,
			Version:     version,
			Diagnostics: diagnosticsOf(ast),
		})
	}()
}

// store keeps ast if the document has not changed since generation.
func (h *handler) store(uri DocumentUri, generation int, ast *parser.AST) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	doc, ok := h.documents[string(uri)]
	if !ok || doc.generation != generation {
		return false
	}
	doc.ast = ast
	doc.astGen = generation
	return true
}

// currentAST returns the symbol index of the current document text, parsing
// synchronously when the background parse has not caught up yet.
func (h *handler) currentAST(uri DocumentUri) *parser.AST {
	h.mu.Lock()
	doc, ok := h.documents[string(uri)]
	if !ok {
		h.mu.Unlock()
		return nil
	}
	if doc.ast != nil && doc.astGen == doc.generation {
		ast := doc.ast
		h.mu.Unlock()
		return ast
	}
	text, generation, dialect := doc.item.Text, doc.generation, doc.dialect
	h.mu.Unlock()

	ast := parser.Parse(context.Background(), text, string(uri), dialect)
	h.store(uri, generation, ast)
	return ast
}

func (h *handler) cancelAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, doc := range h.documents {
		if doc.cancel != nil {
			doc.cancel()
		}
	}
}

func diagnosticsOf(ast *parser.AST) []parser.Diagnostic {
	if ast.Diagnostics == nil {
		return make([]parser.Diagnostic, 0)
	}
	return ast.Diagnostics
}

func (h *handler) documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	uri := decodedParams.TextDocument.URI
	h.mu.Lock()
	h.documents[string(uri)] = &document{
		item:    decodedParams.TextDocument,
		dialect: h.dialectFor(uri),
	}
	h.mu.Unlock()

	h.reparse(conn, uri)
}

func (h *handler) documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	uri := string(decodedParams.TextDocument.URI)
	if doc, ok := h.documents[uri]; ok && doc.cancel != nil {
		doc.cancel()
	}
	delete(h.documents, uri)
}

func (h *handler) documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	if len(decodedParams.ContentChanges) == 0 {
		return
	}

	uri := decodedParams.TextDocument.URI
	h.mu.Lock()
	doc, ok := h.documents[string(uri)]
	if !ok {
		h.mu.Unlock()
		return
	}
	// full sync, the last change holds the whole text
	doc.item.Text = decodedParams.ContentChanges[len(decodedParams.ContentChanges)-1].Text
	doc.item.Version = decodedParams.TextDocument.Version
	doc.generation++
	h.mu.Unlock()

	h.reparse(conn, uri)
}

func (h *handler) documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	items := make([]parser.Diagnostic, 0)
	if ast := h.currentAST(decodedParams.TextDocument.URI); ast != nil {
		items = diagnosticsOf(ast)
	}
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: items,
	})
}
