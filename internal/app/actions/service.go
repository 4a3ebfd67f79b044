package actions

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"frontier/internal/domain"
	"frontier/internal/ports"

	"github.com/google/uuid"
)

// Validation errors surfaced before any side effect.
var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrSkillTooLow        = errors.New("skill too low")
	ErrActionOnCooldown   = errors.New("action on cooldown")
	ErrInvalidDecision    = errors.New("invalid turn decision")
	ErrHandBanked         = errors.New("hand already banked")
)

// Decision is the player's choice on a press-your-luck turn.
type Decision string

const (
	DecisionDraw Decision = "draw"
	DecisionStop Decision = "stop"
)

// Config tunes the orchestrator.
type Config struct {
	// SessionTTL is the absolute lifetime of a session from creation.
	SessionTTL time.Duration
	// EnergyPerMinute is the passive energy regeneration rate.
	EnergyPerMinute float64
}

// Service is the action orchestrator: the public lifecycle API over one
// in-flight activity. All resumable state lives in the session store, never
// in process memory, so any server instance can handle any call.
type Service struct {
	sessions   ports.SessionStore
	characters ports.CharacterPort
	economy    ports.EconomyPort
	crime      ports.CrimePort
	catalog    ports.CatalogPort
	results    ports.ResultStore
	cfg        Config

	// rng is not goroutine safe; draws take the mutex.
	mu  sync.Mutex
	rng *rand.Rand

	now func() time.Time
}

// NewService constructs the orchestrator. rng may be nil to use a
// time-seeded default; now may be nil to use time.Now.
func NewService(
	sessions ports.SessionStore,
	characters ports.CharacterPort,
	economy ports.EconomyPort,
	crime ports.CrimePort,
	catalog ports.CatalogPort,
	results ports.ResultStore,
	cfg Config,
	rng *rand.Rand,
) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 5 * time.Minute
	}
	return &Service{
		sessions:   sessions,
		characters: characters,
		economy:    economy,
		crime:      crime,
		catalog:    catalog,
		results:    results,
		cfg:        cfg,
		rng:        rng,
		now:        time.Now,
	}
}

// ActionSummary is the public view of an action's parameters returned to the
// client at start.
type ActionSummary struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Mode         domain.Mode `json:"mode"`
	EnergyCost   int         `json:"energy_cost"`
	Difficulty   int         `json:"difficulty"`
	RelevantSuit string      `json:"relevant_suit"`
	Crime        bool        `json:"crime"`
}

// StartAction validates the character against the action definition, draws
// the opening hand and persists a new session with a short absolute expiry.
func (s *Service) StartAction(ctx context.Context, characterID, actionID string) (*domain.Session, ActionSummary, error) {
	def, err := s.catalog.Action(actionID)
	if err != nil {
		return nil, ActionSummary{}, err
	}

	char, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return nil, ActionSummary{}, err
	}

	now := s.now()
	if err := s.checkPreconditions(char, def, now); err != nil {
		return nil, ActionSummary{}, err
	}

	session, err := s.createSession(ctx, char, now, def.Mode, def.RelevantSuit, def.EnergyCost)
	if err != nil {
		return nil, ActionSummary{}, err
	}
	session.ActionID = def.ID
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, ActionSummary{}, fmt.Errorf("persist session: %w", err)
	}

	summary := ActionSummary{
		ID:           def.ID,
		Name:         def.Name,
		Mode:         def.Mode,
		EnergyCost:   def.EnergyCost,
		Difficulty:   def.Difficulty,
		RelevantSuit: def.RelevantSuit,
		Crime:        def.Crime,
	}
	return session, summary, nil
}

// StartJob starts a session for a repeatable job. The job definition is not
// a persisted document, so the session inlines a snapshot of everything
// resolution will need.
func (s *Service) StartJob(ctx context.Context, characterID, jobID string) (*domain.Session, error) {
	def, err := s.catalog.Job(jobID)
	if err != nil {
		return nil, err
	}

	char, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	energy := domain.RegeneratedEnergy(char.Energy, char.MaxEnergy, char.EnergyUpdatedAt, now, s.cfg.EnergyPerMinute)
	if energy < def.EnergyCost {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientEnergy, def.EnergyCost, energy)
	}

	session, err := s.createSession(ctx, char, now, def.Mode, def.RelevantSuit, def.EnergyCost)
	if err != nil {
		return nil, err
	}
	session.Job = &domain.JobSnapshot{
		JobID:   def.ID,
		GoldMin: def.GoldMin,
		GoldMax: def.GoldMax,
		BaseXP:  def.BaseXP,
		Curve:   def.Curve,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

func (s *Service) checkPreconditions(char ports.Character, def domain.ActionDef, now time.Time) error {
	energy := domain.RegeneratedEnergy(char.Energy, char.MaxEnergy, char.EnergyUpdatedAt, now, s.cfg.EnergyPerMinute)
	if energy < def.EnergyCost {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientEnergy, def.EnergyCost, energy)
	}

	if def.Crime {
		level := char.SkillLevel(def.RelevantSuit)
		if level < def.RequiredSkill {
			return fmt.Errorf("%w: %s requires criminal skill %d, have %d", ErrSkillTooLow, def.Name, def.RequiredSkill, level)
		}
	}

	if until, ok := char.Cooldowns[def.ID]; ok && now.Before(until) {
		return fmt.Errorf("%w: %s available at %s", ErrActionOnCooldown, def.Name, until.UTC().Format(time.RFC3339))
	}

	return nil
}

func (s *Service) createSession(ctx context.Context, char ports.Character, now time.Time, mode domain.Mode, suit string, energyCost int) (*domain.Session, error) {
	initial := 1
	if mode == domain.ModePoker {
		initial = domain.PokerHandSize
	}

	hand, err := s.draw(nil, initial)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		ID:                uuid.NewString(),
		CharacterID:       char.ID,
		Mode:              mode,
		RelevantSuit:      suit,
		SkillBoostPercent: domain.SkillBoostPercent(char.SkillLevel(suit)),
		EnergyCost:        energyCost,
		Hand:              hand,
		Status:            domain.StatusInProgress,
		StartedAt:         now,
		ExpiresAt:         now.Add(s.cfg.SessionTTL),
	}, nil
}

func (s *Service) draw(held []domain.Card, n int) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DrawCards(s.rng, held, n)
}

// loadOwned fetches a session on behalf of characterID. Another character's
// session is indistinguishable from an absent one, so a stolen session id
// cannot be used to probe or drive someone else's activity.
func (s *Service) loadOwned(ctx context.Context, characterID, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CharacterID != characterID {
		return nil, fmt.Errorf("%w: %s", ports.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// ProcessTurn applies one press-your-luck decision and re-persists the
// session. It never changes the session status and never extends the expiry;
// an expired session is simply observed as absent.
func (s *Service) ProcessTurn(ctx context.Context, characterID, sessionID string, decision Decision) (*domain.Session, error) {
	session, err := s.loadOwned(ctx, characterID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Mode != domain.ModePressYourLuck {
		return nil, fmt.Errorf("%w: %s sessions take no turns", ErrInvalidDecision, session.Mode)
	}
	if session.Stopped {
		return nil, ErrHandBanked
	}

	switch decision {
	case DecisionDraw:
		if len(session.Hand) >= domain.MaxPressYourLuckSize {
			return nil, fmt.Errorf("%w: press-your-luck requires 1-%d cards, got %d", domain.ErrHandSize, domain.MaxPressYourLuckSize, len(session.Hand)+1)
		}
		drawn, err := s.draw(session.Hand, 1)
		if err != nil {
			return nil, err
		}
		session.Hand = append(session.Hand, drawn...)
	case DecisionStop:
		session.Stopped = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// RewardSummary reports what a resolved session paid out. GoldBalance is the
// wallet balance after the credit landed.
type RewardSummary struct {
	Rewards     domain.Rewards `json:"rewards"`
	GoldReason  string         `json:"gold_reason"`
	GoldBalance int64          `json:"gold_balance"`
}

// Gold credit reason codes for the economic ledger.
const (
	reasonActionReward = "action_reward"
	reasonJobWages     = "job_wages"
)

// Resolve finalizes the hand, computes effectiveness and rewards, applies
// side effects and deletes the session. A second Resolve for the same id
// finds no session and fails with ErrSessionNotFound, which makes retries
// after success harmless.
//
// Side effects run in order: XP award, gold credit, energy debit, cooldown
// stamp, result record, session delete. A failure aborts the remaining steps
// and intentionally leaves the session in place so the caller can retry;
// the window between a successful gold credit and the session delete is a
// known double-grant risk accepted in exchange for never silently dropping
// rewards.
func (s *Service) Resolve(ctx context.Context, characterID, sessionID string) (domain.GameResult, RewardSummary, error) {
	session, err := s.loadOwned(ctx, characterID, sessionID)
	if err != nil {
		return domain.GameResult{}, RewardSummary{}, err
	}

	hr, err := domain.EvaluateHand(session.Mode, session.Hand, session.RelevantSuit)
	if err != nil {
		return domain.GameResult{}, RewardSummary{}, err
	}

	result := domain.GameResult{
		Hand:              hr,
		Effectiveness:     domain.Effectiveness(hr, session.SkillBoostPercent),
		SkillBoostPercent: session.SkillBoostPercent,
	}

	var plan domain.RewardPlan
	var def domain.ActionDef
	switch session.Kind() {
	case domain.KindJob:
		// Jobs always "succeed"; the curve scales the payout instead.
		result.Success = true
		plan = domain.JobPlan{
			GoldMin: session.Job.GoldMin,
			GoldMax: session.Job.GoldMax,
			BaseXP:  session.Job.BaseXP,
			Curve:   session.Job.Curve,
		}
	default:
		def, err = s.catalog.Action(session.ActionID)
		if err != nil {
			return domain.GameResult{}, RewardSummary{}, err
		}
		result.Success = result.Effectiveness >= float64(def.Difficulty)
		if !result.Success {
			// Partial mitigation for a near miss: how close the hand
			// came to the difficulty bar.
			result.Mitigation = result.Effectiveness / float64(def.Difficulty)
		}
		if def.Crime {
			// The witness roll precedes the monetary steps so the
			// penalty can halve the gold before it is credited.
			outcome, err := s.crime.ResolveAttempt(ctx, session.CharacterID, def.ID, result.Success, def.Difficulty)
			if err != nil {
				return domain.GameResult{}, RewardSummary{}, fmt.Errorf("resolve crime attempt: %w", err)
			}
			result.Witnessed = outcome.Witnessed
		}
		plan = domain.ActionPlan{BaseGold: def.BaseGold, BaseXP: def.BaseXP, Crime: def.Crime}
	}

	rewards := plan.Rewards(result)
	summary := RewardSummary{Rewards: rewards, GoldReason: reasonJobWages}
	if session.Kind() == domain.KindAction {
		summary.GoldReason = reasonActionReward
	}

	if err := s.applySideEffects(ctx, session, def, result, summary); err != nil {
		return domain.GameResult{}, RewardSummary{}, err
	}

	// Best effort; the credit is already durable, so a failed balance read
	// must not fail the resolution.
	if balance, err := s.economy.GetBalance(ctx, session.CharacterID); err == nil {
		summary.GoldBalance = balance
	}

	session.Status = domain.StatusResolved
	return result, summary, nil
}

func (s *Service) applySideEffects(ctx context.Context, session *domain.Session, def domain.ActionDef, result domain.GameResult, summary RewardSummary) error {
	rewards := summary.Rewards
	now := s.now()

	if rewards.XP > 0 {
		if def.Crime {
			if err := s.crime.GrantCriminalXP(ctx, session.CharacterID, rewards.XP); err != nil {
				return fmt.Errorf("award criminal xp: %w", err)
			}
		} else if err := s.characters.GrantXP(ctx, session.CharacterID, session.RelevantSuit, rewards.XP); err != nil {
			return fmt.Errorf("award xp: %w", err)
		}
	}

	if rewards.Gold > 0 {
		metadata := map[string]interface{}{
			"session_id": session.ID,
			"rank":       result.Hand.RankName,
		}
		if err := s.economy.CreditGold(ctx, session.CharacterID, rewards.Gold, summary.GoldReason, metadata); err != nil {
			return fmt.Errorf("credit gold: %w", err)
		}
	}

	if err := s.characters.SpendEnergy(ctx, session.CharacterID, session.EnergyCost, now); err != nil {
		return fmt.Errorf("debit energy: %w", err)
	}

	if session.Kind() == domain.KindAction && def.Cooldown > 0 {
		if err := s.characters.StampCooldown(ctx, session.CharacterID, def.ID, now.Add(def.Cooldown)); err != nil {
			return fmt.Errorf("stamp cooldown: %w", err)
		}
	}

	if session.Kind() == domain.KindAction {
		record := domain.ActionResultRecord{
			SessionID:     session.ID,
			CharacterID:   session.CharacterID,
			ActionID:      session.ActionID,
			Cards:         session.Hand,
			Hand:          result.Hand,
			Effectiveness: result.Effectiveness,
			Success:       result.Success,
			Witnessed:     result.Witnessed,
			Rewards:       rewards,
			ResolvedAt:    now,
		}
		if err := s.results.Write(ctx, record); err != nil {
			return fmt.Errorf("persist result record: %w", err)
		}
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Cancel deletes the caller's session with no side effects. It succeeds even
// when the session has already expired or never existed; a session owned by
// another character counts as absent and is left untouched.
func (s *Service) Cancel(ctx context.Context, characterID, sessionID string) error {
	if _, err := s.loadOwned(ctx, characterID, sessionID); err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// GetSessionState loads the caller's current session, or ErrSessionNotFound
// when it is absent, expired, already resolved or owned by someone else.
func (s *Service) GetSessionState(ctx context.Context, characterID, sessionID string) (*domain.Session, error) {
	return s.loadOwned(ctx, characterID, sessionID)
}
