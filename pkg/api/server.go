// Dolman
// Copyright (c) 2026 The Dolman Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dolman.
//
// Dolman is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dolman is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dolman.  If not, see <http://www.gnu.org/licenses/>.

// Package api runs the JSON-RPC 2.0 websocket API that clients use to
// drive the service. The server only listens on loopback; anything able
// to reach it is trusted.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/SlippiLabs/dolman/pkg/api/methods"
	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/models/requests"
	"github.com/SlippiLabs/dolman/pkg/api/validation"
	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/SlippiLabs/dolman/pkg/database/historydb"
	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/installer"
	"github.com/SlippiLabs/dolman/pkg/instances"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

var JSONRPCErrorParseError = models.ErrorObject{
	Code:    -32700,
	Message: "Parse error",
}
var JSONRPCErrorInvalidRequest = models.ErrorObject{
	Code:    -32600,
	Message: "Invalid Request",
}
var JSONRPCErrorMethodNotFound = models.ErrorObject{
	Code:    -32601,
	Message: "Method not found",
}
var JSONRPCErrorInvalidParams = models.ErrorObject{
	Code:    -32602,
	Message: "Invalid params",
}
var JSONRPCErrorInternalError = models.ErrorObject{
	Code:    -32603,
	Message: "Internal error",
}
var JSONRPCErrorServerError = models.ErrorObject{
	Code:    -32000,
	Message: "Server error",
}

// ErrMethodNotFound is returned for requests naming a method the server
// does not implement.
var ErrMethodNotFound = errors.New("unknown method")

func maybeUUID(req *models.RequestObject) uuid.UUID {
	if req.ID == nil {
		return uuid.Nil
	}
	return *req.ID
}

var methodMap = map[string]func(requests.RequestEnv) (any, error){
	// instances
	models.MethodInstances:       methods.HandleInstances,
	models.MethodInstancesLaunch: methods.HandleInstancesLaunch,
	models.MethodInstancesKill:   methods.HandleInstancesKill,
	// install
	models.MethodInstallValidate: methods.HandleInstallValidate,
	models.MethodInstallUpdate:   methods.HandleInstallUpdate,
	models.MethodGamePathAdd:     methods.HandleGamePathAdd,
	models.MethodConfigImport:    methods.HandleConfigImport,
	models.MethodCacheClear:      methods.HandleCacheClear,
	// settings
	models.MethodSettings:       methods.HandleSettings,
	models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
	// updates
	models.MethodUpdateCheck:   methods.HandleUpdateCheck,
	models.MethodUpdateInstall: methods.HandleUpdateInstall,
	// utils
	models.MethodHistory: methods.HandleHistory,
	models.MethodVersion: methods.HandleVersion,
}

//nolint:gocritic // single-use parameter in request dispatch
func handleRequest(env requests.RequestEnv, req models.RequestObject) (any, error) {
	log.Debug().Interface("request", req).Msg("received request")

	fn, ok := methodMap[strings.ToLower(req.Method)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, req.Method)
	}

	if req.ID == nil {
		return nil, fmt.Errorf("missing ID for request: %s", req.Method)
	}

	env.ID = *req.ID
	env.Params = req.Params

	return fn(env)
}

// errorObjectFor maps a handler error to a JSON-RPC error object. Argument
// problems keep their message so clients see what was wrong with the
// request; everything else is reported verbatim as a server error.
func errorObjectFor(err error) models.ErrorObject {
	switch {
	case errors.Is(err, ErrMethodNotFound):
		return JSONRPCErrorMethodNotFound
	case errors.Is(err, validation.ErrMissingParams),
		errors.Is(err, validation.ErrInvalidParams),
		errors.Is(err, dolphin.ErrInvalidArgument):
		return models.ErrorObject{Code: JSONRPCErrorInvalidParams.Code, Message: err.Error()}
	}

	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return models.ErrorObject{Code: JSONRPCErrorInvalidParams.Code, Message: err.Error()}
	}

	return models.ErrorObject{Code: JSONRPCErrorServerError.Code, Message: err.Error()}
}

func sendResponse(session *melody.Session, id uuid.UUID, result any) error {
	log.Debug().Interface("result", result).Msg("sending response")

	resp := models.ResponseObject{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error marshalling response: %w", err)
	}

	if err := session.Write(data); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	return nil
}

func sendError(session *melody.Session, id uuid.UUID, errObj models.ErrorObject) error {
	log.Debug().Int("code", errObj.Code).Str("message", errObj.Message).Msg("sending error")

	resp := models.ResponseErrorObject{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &errObj,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error marshalling error response: %w", err)
	}

	if err := session.Write(data); err != nil {
		return fmt.Errorf("error writing error response: %w", err)
	}
	return nil
}

func broadcastNotifications(
	ctx context.Context,
	session *melody.Melody,
	notifications <-chan models.Notification,
) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("stopping notification broadcaster")
			return
		case notif := <-notifications:
			params, err := json.Marshal(notif.Params)
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification params")
				continue
			}

			req := models.RequestObject{
				JSONRPC: "2.0",
				Method:  notif.Method,
				Params:  params,
			}

			data, err := json.Marshal(req)
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification request")
				continue
			}

			err = session.Broadcast(data)
			if err != nil {
				log.Error().Err(err).Msg("broadcasting notification")
			}
		}
	}
}

func handleWSMessage(env requests.RequestEnv) func(session *melody.Session, msg []byte) { //nolint:gocritic // env copied into closure
	return func(session *melody.Session, msg []byte) {
		// ping command for heartbeat operation
		if bytes.Equal(msg, []byte("ping")) {
			err := session.Write([]byte("pong"))
			if err != nil {
				log.Error().Err(err).Msg("sending pong")
			}
			return
		}

		if !json.Valid(msg) {
			log.Error().Msg("data not valid json")
			if err := sendError(session, uuid.Nil, JSONRPCErrorParseError); err != nil {
				log.Error().Err(err).Msg("error sending error response")
			}
			return
		}

		// try parse a request first, which has a method field
		var req models.RequestObject
		err := json.Unmarshal(msg, &req)

		if err == nil && req.JSONRPC != "2.0" {
			log.Error().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
			if err := sendError(session, maybeUUID(&req), JSONRPCErrorInvalidRequest); err != nil {
				log.Error().Err(err).Msg("error sending error response")
			}
			return
		}

		if err == nil && req.Method != "" {
			if req.ID == nil {
				// request is notification
				log.Info().Interface("req", req).Msg("received notification, ignoring")
				return
			}

			resp, err := handleRequest(env, req)
			if err != nil {
				log.Error().Err(err).Msgf("error handling request: %s", req.Method)
				if err := sendError(session, *req.ID, errorObjectFor(err)); err != nil {
					log.Error().Err(err).Msg("error sending error response")
				}
				return
			}

			if err := sendResponse(session, *req.ID, resp); err != nil {
				log.Error().Err(err).Msg("error sending response")
			}
			return
		}

		// otherwise try parse a response, which has an id field
		var resp models.ResponseObject
		err = json.Unmarshal(msg, &resp)
		if err == nil && resp.ID != uuid.Nil {
			log.Debug().Interface("response", resp).Msg("received response")
			return
		}

		log.Error().Err(err).Msg("message does not match known types")
		if err := sendError(session, uuid.Nil, JSONRPCErrorInvalidRequest); err != nil {
			log.Error().Err(err).Msg("error sending error response")
		}
	}
}

// Start runs the API server until the process exits. It blocks.
func Start(
	ctx context.Context,
	platform platforms.Platform,
	cfg *config.Instance,
	registry *instances.Registry,
	mgr *installer.Manager,
	history *historydb.HistoryDB,
	notifications <-chan models.Notification,
) error {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(config.APIRequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*", "capacitor://*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Accept"},
		ExposedHeaders: []string{},
	}))

	session := melody.New()
	session.Upgrader.CheckOrigin = func(_ *http.Request) bool { return true }
	go broadcastNotifications(ctx, session, notifications)

	r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
		err := session.HandleRequest(w, r)
		if err != nil {
			log.Error().Err(err).Msg("handling websocket request: latest")
		}
	})

	r.Get("/api/v0.1", func(w http.ResponseWriter, r *http.Request) {
		err := session.HandleRequest(w, r)
		if err != nil {
			log.Error().Err(err).Msg("handling websocket request: v0.1")
		}
	})

	session.HandleMessage(handleWSMessage(requests.RequestEnv{
		Platform:  platform,
		Config:    cfg,
		Registry:  registry,
		Installer: mgr,
		History:   history,
	}))

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.APIPort()))
	//nolint:gosec // local control socket, no timeout tuning needed
	err := http.ListenAndServe(addr, r)
	if err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}
	return nil
}
