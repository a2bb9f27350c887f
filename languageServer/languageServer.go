package languageServer

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/c64tools/asmlens/config"
	"github.com/c64tools/asmlens/grammar"
	"github.com/c64tools/asmlens/util"
)

const serverName = "asmlens"

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

func ListenAndServe() {
	// using stdin and stdout
	h := newHandler(config.GetConfig())
	<-jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}), h).DisconnectNotify()
}

func ListenAndServeTCP(addr string) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Could not bind to address %s: %v", addr, err)
	}
	defer lis.Close()

	log.Println(serverName+": listening for TCP connections on", addr)

	connectionCount := 0

	for {
		conn, err := lis.Accept()
		if err != nil {
			log.Fatalf("failed to accept incoming connection: %v", err)
		}
		connectionCount = connectionCount + 1
		connectionID := connectionCount
		log.Printf("%s: received incoming connection #%d\n", serverName, connectionID)
		jsonrpc2Connection := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}), newHandler(config.GetConfig()))
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			log.Printf("%s: connection #%d closed\n", serverName, connectionID)
		}()
	}
}

// handler serves one client connection. jsonrpc2 delivers requests one at a
// time, parsing happens on background goroutines guarded by mu.
type handler struct {
	conf *config.Config

	mu        sync.Mutex
	documents map[string]*document // keyed by uri
	override  *grammar.Dialect     // dialect forced by initializationOptions
}

func newHandler(conf *config.Config) *handler {
	return &handler{
		conf:      conf,
		documents: make(map[string]*document),
	}
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("%s: received request: %s", serverName, req.Method)
	switch req.Method {
	case "textDocument/didOpen":
		h.documentOpenNotification(conn, req)
	case "textDocument/didClose":
		h.documentCloseNotification(conn, req)
	case "textDocument/didChange":
		h.documentChangeNotification(conn, req)
	case "initialize":
		h.handleInitialize(conn, req)
	case "initialized":
	case "textDocument/diagnostic":
		h.documentDiagnostics(conn, req)
	case "textDocument/hover":
		h.hoverRequest(conn, req)
	case "textDocument/definition":
		h.definitionRequest(conn, req)
	case "textDocument/references":
		h.referencesRequest(conn, req)
	case "textDocument/documentSymbol":
		h.documentSymbolRequest(conn, req)
	case "textDocument/completion":
		h.completionRequest(conn, req)
	case "textDocument/semanticTokens/full":
		h.semanticTokensRequest(conn, req)

	// quitting
	case "shutdown":
		h.cancelAll()
		conn.Reply(context.Background(), req.ID, nil)
	case "exit":
		conn.Close()

	default:
		if !req.Notif {
			rpcErr := &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method}
			conn.ReplyWithError(context.Background(), req.ID, rpcErr)
		}
	}
}

// decodeParams unmarshals the request parameters, replying with an error on
// failure.
func decodeParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request, v interface{}) bool {
	err := errNoParams
	if req.Params != nil {
		err = json.Unmarshal(*req.Params, v)
	}
	if err != nil {
		if !req.Notif {
			rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid parameters"}
			rpcErr.SetError(err.Error())
			conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		}
		util.LogF("%s: invalid parameters for %s: %v", serverName, req.Method, err)
		return false
	}
	return true
}

func (h *handler) handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	if opts := decodedParams.InitializationOptions; opts != nil && opts.Dialect != "" {
		if d, ok := grammar.ParseDialect(opts.Dialect); ok {
			h.mu.Lock()
			h.override = &d
			h.mu.Unlock()
		} else {
			util.LogF("%s: ignoring unknown dialect %q", serverName, opts.Dialect)
		}
	}

	result := InitializeResult{ServerInfo: ServerInfo{Name: serverName}}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	result.Capabilities.DefinitionProvider = true
	result.Capabilities.ReferencesProvider = true
	result.Capabilities.DocumentSymbolProvider = true
	result.Capabilities.DiagnosticProvider = &DiagnosticOptions{}
	result.Capabilities.CompletionProvider = &CompletionOptions{TriggerCharacters: []string{"!", ".", "#"}}
	result.Capabilities.SemanticTokensProvider = &SemanticTokensOptions{
		Legend: SemanticTokensLegend{TokenTypes: semanticTokenTypes, TokenModifiers: semanticTokenModifiers},
		Full:   true,
	}
	conn.Reply(context.Background(), req.ID, result)
}
