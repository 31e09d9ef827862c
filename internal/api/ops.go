package api

import (
	"context"
	"time"

	"recruitbot/internal/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Полные имена методов ops-сервиса.
const (
	opsServiceName        = "recruitbot.ops.v1.Ops"
	OpsGetStatsMethod     = "/" + opsServiceName + "/GetStats"
	OpsListPendingMethod  = "/" + opsServiceName + "/ListPending"
	defaultPendingLimit   = 50
	pendingLimitFieldName = "limit"
)

// OpsStore is the read side the ops API needs.
type OpsStore interface {
	GetStats(ctx context.Context) (*models.Stats, error)
	ListPendingQuestions(ctx context.Context) ([]*models.PendingQuestion, error)
	ListApplicationRows(ctx context.Context) ([]*models.ApplicationRow, error)
	PingContext(ctx context.Context) error
}

// OpsServer is the gRPC surface. Messages are structpb.Struct so the service
// needs no generated code.
type OpsServer interface {
	GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListPending(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type OpsService struct {
	store OpsStore
}

func NewOpsService(store OpsStore) *OpsService {
	return &OpsService{store: store}
}

func (s *OpsService) GetStats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	st, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load stats")
	}
	out, err := structpb.NewStruct(statsMap(st))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// ListPending returns open questions, oldest first. req may carry "limit".
func (s *OpsService) ListPending(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := defaultPendingLimit
	if v, ok := req.GetFields()[pendingLimitFieldName]; ok {
		n := int(v.GetNumberValue())
		if n <= 0 {
			return nil, status.Error(codes.InvalidArgument, "limit must be positive")
		}
		limit = n
	}

	questions, err := s.store.ListPendingQuestions(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to load pending questions")
	}
	total := len(questions)
	if len(questions) > limit {
		questions = questions[:limit]
	}

	items := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		items = append(items, pendingMap(q))
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"questions": items,
		"total":     total,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func statsMap(st *models.Stats) map[string]interface{} {
	return map[string]interface{}{
		"total_users":           st.TotalUsers,
		"registered":            st.Registered,
		"applications_pending":  st.Pending,
		"applications_approved": st.Approved,
		"applications_rejected": st.Rejected,
		"open_questions":        st.OpenQuestions,
		"auto_answers":          st.AutoAnswers,
		"admin_answers":         st.AdminAnswers,
		"avg_confidence":        st.AvgConfidence,
		"autonomy_percent":      st.Autonomy(),
	}
}

func pendingMap(q *models.PendingQuestion) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    q.UserID,
		"question":   q.Question,
		"created_at": q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// RegisterOpsServer attaches srv under recruitbot.ops.v1.Ops.
func RegisterOpsServer(s grpc.ServiceRegistrar, srv OpsServer) {
	s.RegisterService(&opsServiceDesc, srv)
}

var opsServiceDesc = grpc.ServiceDesc{
	ServiceName: opsServiceName,
	HandlerType: (*OpsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStats", Handler: opsGetStatsHandler},
		{MethodName: "ListPending", Handler: opsListPendingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruitbot/ops/v1/ops.proto",
}

func opsGetStatsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OpsServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OpsGetStatsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OpsServer).GetStats(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func opsListPendingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OpsServer).ListPending(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OpsListPendingMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OpsServer).ListPending(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// OpsClient is a thin client for the ops service.
type OpsClient struct {
	cc grpc.ClientConnInterface
}

func NewOpsClient(cc grpc.ClientConnInterface) *OpsClient {
	return &OpsClient{cc: cc}
}

func (c *OpsClient) GetStats(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, OpsGetStatsMethod, &structpb.Struct{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OpsClient) ListPending(ctx context.Context, limit int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if limit != 0 {
		in.Fields[pendingLimitFieldName] = structpb.NewNumberValue(float64(limit))
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, OpsListPendingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
