package store

import "context"

// DefaultActor 是沒有登入身分時寫入 created_by / modified_by 的值
const DefaultActor = "anonymousUser"

// MaxActorLength 對應 created_by / modified_by 的 VARCHAR(100)
const MaxActorLength = 100

type actorKey struct{}

// WithActor 將操作者名稱放入 context，供寫入稽核欄位
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}
