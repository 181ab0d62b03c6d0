package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
)

// socketReply answers one text frame on /ws/compile.
type socketReply struct {
	Result *assemble.Result `json:"result,omitempty"`
	Error  *socketError     `json:"error,omitempty"`
}

type socketError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorReply(err error) socketReply {
	var coded *chart.CodedError
	if errors.As(err, &coded) {
		return socketReply{Error: &socketError{Code: coded.Code, Message: err.Error()}}
	}
	return socketReply{Error: &socketError{Code: "COMPILE_FAILED", Message: err.Error()}}
}

// compileSocket upgrades to a websocket where each text frame carries a
// chart spec and is answered with its compile result.
func compileSocket(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			slog.Debug("compile socket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		ctx := r.Context()
		for {
			data, op, err := wsutil.ReadClientData(conn)
			if err != nil {
				slog.Debug("compile socket closed", "error", err)
				return
			}
			if op != ws.OpText {
				continue
			}

			var reply socketReply
			var spec chart.Spec
			if err := json.Unmarshal(data, &spec); err != nil {
				reply = errorReply(chart.NewError(chart.CodeValidation, "malformed spec", err))
			} else if res, err := svc.Compile(ctx, spec); err != nil {
				reply = errorReply(err)
			} else {
				reply = socketReply{Result: res}
			}

			out, err := json.Marshal(reply)
			if err != nil {
				slog.Error("compile socket marshal failed", "error", err)
				return
			}
			if err := wsutil.WriteServerMessage(conn, ws.OpText, out); err != nil {
				slog.Debug("compile socket write failed", "error", err)
				return
			}
		}
	}
}
