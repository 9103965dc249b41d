package handler

type ContextKey string

var (
	RequestIDCtxKey  ContextKey = "requestID"
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	WorkerInfoCtx    ContextKey = "workerInfo"
	StationCtx       ContextKey = "station"
	ShiftCtx         ContextKey = "shift"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	ShiftSwapCtx     ContextKey = "shiftSwap"
	PayrollRunCtx    ContextKey = "payrollRun"
)
