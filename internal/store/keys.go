package store

// Key names one slot in the ledger's fixed storage namespace. The "sp_"
// prefix is kept from earlier releases so existing databases stay readable.
type Key string

const (
	KeyUserMood         Key = "sp_user_mood"
	KeyTasks            Key = "sp_tasks"
	KeyScheduledTasks   Key = "sp_scheduled_tasks"
	KeyDistractionTypes Key = "sp_distraction_types"
	KeyDistractionLogs  Key = "sp_distraction_logs"
	KeyWorkLogs         Key = "sp_work_logs"
	KeyReflections      Key = "sp_daily_reflections"
	KeyUserStats        Key = "sp_user_stats"
	KeyEventLog         Key = "sp_event_log"
)

// AllKeys enumerates the full namespace, used by Clear and the sign-in pull.
func AllKeys() []Key {
	return []Key{
		KeyUserMood,
		KeyTasks,
		KeyScheduledTasks,
		KeyDistractionTypes,
		KeyDistractionLogs,
		KeyWorkLogs,
		KeyReflections,
		KeyUserStats,
		KeyEventLog,
	}
}
