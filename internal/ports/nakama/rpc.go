package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"frontier/internal/app/actions"
	"frontier/internal/app/jobs"
	"frontier/internal/domain"
	"frontier/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC-style status codes used in runtime errors.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeInternal           = 13
)

// handlers bundles the services the RPC layer fronts.
type handlers struct {
	actions    *actions.Service
	protection *jobs.ProtectionService
	gossip     *jobs.GossipService
}

// RegisterRPCs registers the lifecycle and scheduler RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, h *handlers) error {
	endpoints := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcActionStart:         h.rpcActionStart,
		RpcActionTurn:          h.rpcActionTurn,
		RpcActionResolve:       h.rpcActionResolve,
		RpcActionCancel:        h.rpcActionCancel,
		RpcActionState:         h.rpcActionState,
		RpcJobWeeklyProtection: h.rpcJobWeeklyProtection,
		RpcJobGossipSpread:     h.rpcJobGossipSpread,
	}
	for id, fn := range endpoints {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

// toRuntimeError maps application errors onto typed runtime errors. Known
// failures carry their reason string; anything else is logged and reported
// as an opaque internal error.
func toRuntimeError(logger runtime.Logger, err error) error {
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		return runtime.NewError("session not found", codeNotFound)
	case errors.Is(err, ports.ErrActionNotFound),
		errors.Is(err, ports.ErrJobNotFound),
		errors.Is(err, ports.ErrCharacterNotFound):
		return runtime.NewError(err.Error(), codeNotFound)
	case errors.Is(err, actions.ErrInsufficientEnergy),
		errors.Is(err, actions.ErrSkillTooLow),
		errors.Is(err, actions.ErrActionOnCooldown):
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	case errors.Is(err, domain.ErrHandSize),
		errors.Is(err, actions.ErrInvalidDecision),
		errors.Is(err, actions.ErrHandBanked):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	default:
		logger.Error("RPC failed: %v", err)
		return runtime.NewError("internal server error", codeInternal)
	}
}

func callerID(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", codePermissionDenied)
	}
	return userID, nil
}

// requireServer rejects client sessions; scheduler RPCs are server-to-server
// only.
func requireServer(ctx context.Context) error {
	if userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); userID != "" {
		return runtime.NewError("server-only RPC", codePermissionDenied)
	}
	return nil
}

type startRequest struct {
	ActionID string `json:"action_id,omitempty"`
	JobID    string `json:"job_id,omitempty"`
}

type startResponse struct {
	Session sessionView            `json:"session"`
	Action  *actions.ActionSummary `json:"action,omitempty"`
}

func (h *handlers) rpcActionStart(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req startRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	var resp startResponse
	switch {
	case req.ActionID != "":
		session, summary, err := h.actions.StartAction(ctx, userID, req.ActionID)
		if err != nil {
			return "", toRuntimeError(logger, err)
		}
		resp = startResponse{Session: toSessionView(session), Action: &summary}
	case req.JobID != "":
		session, err := h.actions.StartJob(ctx, userID, req.JobID)
		if err != nil {
			return "", toRuntimeError(logger, err)
		}
		resp = startResponse{Session: toSessionView(session)}
	default:
		return "", runtime.NewError("action_id or job_id is required", codeInvalidArgument)
	}

	logger.Debug("rpcActionStart [User:%s]: session %s", userID, resp.Session.SessionID)
	b, _ := json.Marshal(resp)
	return string(b), nil
}

type turnRequest struct {
	SessionID string `json:"session_id"`
	Decision  string `json:"decision"`
}

func (h *handlers) rpcActionTurn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req turnRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	session, err := h.actions.ProcessTurn(ctx, userID, req.SessionID, actions.Decision(req.Decision))
	if err != nil {
		return "", toRuntimeError(logger, err)
	}

	b, _ := json.Marshal(toSessionView(session))
	return string(b), nil
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type resolveResponse struct {
	Result  domain.GameResult     `json:"result"`
	Rewards actions.RewardSummary `json:"rewards"`
}

func (h *handlers) rpcActionResolve(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req sessionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	result, rewards, err := h.actions.Resolve(ctx, userID, req.SessionID)
	if err != nil {
		return "", toRuntimeError(logger, err)
	}

	logger.Info("rpcActionResolve [User:%s]: session %s rank=%s gold=%d xp=%d",
		userID, req.SessionID, result.Hand.RankName, rewards.Rewards.Gold, rewards.Rewards.XP)
	b, _ := json.Marshal(resolveResponse{Result: result, Rewards: rewards})
	return string(b), nil
}

func (h *handlers) rpcActionCancel(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req sessionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	if err := h.actions.Cancel(ctx, userID, req.SessionID); err != nil {
		return "", toRuntimeError(logger, err)
	}
	return `{"cancelled":true}`, nil
}

type stateResponse struct {
	Found   bool         `json:"found"`
	Session *sessionView `json:"session,omitempty"`
}

func (h *handlers) rpcActionState(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req sessionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	session, err := h.actions.GetSessionState(ctx, userID, req.SessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			b, _ := json.Marshal(stateResponse{Found: false})
			return string(b), nil
		}
		return "", toRuntimeError(logger, err)
	}

	view := toSessionView(session)
	b, _ := json.Marshal(stateResponse{Found: true, Session: &view})
	return string(b), nil
}

func (h *handlers) rpcJobWeeklyProtection(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	if err := requireServer(ctx); err != nil {
		return "", err
	}

	result, err := h.protection.RunWeekly(ctx, time.Now())
	if err != nil {
		return "", toRuntimeError(logger, err)
	}
	if !result.Ran {
		logger.Debug("rpcJobWeeklyProtection: skipped (%s)", result.Reason)
	} else {
		logger.Info("rpcJobWeeklyProtection: paid %d businesses", result.Processed)
	}

	b, _ := json.Marshal(result)
	return string(b), nil
}

func (h *handlers) rpcJobGossipSpread(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	if err := requireServer(ctx); err != nil {
		return "", err
	}

	result, err := h.gossip.RunDaily(ctx, time.Now())
	if err != nil {
		return "", toRuntimeError(logger, err)
	}
	if !result.Ran {
		logger.Debug("rpcJobGossipSpread: skipped (%s)", result.Reason)
	} else {
		logger.Info("rpcJobGossipSpread: %d listeners reached", result.Processed)
	}

	b, _ := json.Marshal(result)
	return string(b), nil
}
