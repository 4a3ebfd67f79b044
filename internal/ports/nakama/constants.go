package nakama

// Storage collections. Sessions, locks and markers are system-owned (empty
// user id) so any server instance can address them by key alone; character
// documents are owned by their user.
const (
	CollectionSessions      = "action_sessions"
	CollectionCharacters    = "characters"
	CollectionCrimeProfiles = "crime_profiles"
	CollectionResults       = "action_results"
	CollectionJobLocks      = "job_locks"
	CollectionJobPeriods    = "job_periods"
	CollectionBusinesses    = "businesses"
	CollectionRumors        = "rumors"
)

// Per-user document keys.
const (
	KeyCharacterProfile = "profile"
	KeyCrimeProfile     = "profile"
)

// RPC ids exposed to clients and to the external scheduler.
const (
	RpcActionStart   = "action_start"
	RpcActionTurn    = "action_turn"
	RpcActionResolve = "action_resolve"
	RpcActionCancel  = "action_cancel"
	RpcActionState   = "action_state"

	// Scheduler-only RPCs; rejected for client sessions.
	RpcJobWeeklyProtection = "job_weekly_protection"
	RpcJobGossipSpread     = "job_gossip_spread"
)
