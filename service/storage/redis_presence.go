package storage

import (
	"context"
	"strconv"

	"ChatProject/service/chat"
	"ChatProject/tools/errs"

	"github.com/redis/go-redis/v9"
)

// Keys (prefix defaults to "chat"):
//
//	<prefix>:online              SET of users online on any node
//	<prefix>:presence:<user>     SET of nodes the user is connected to
//	<prefix>:node:<node>:users   SET of users connected to a node
const defaultPrefix = "chat"

// KEYS[1] = online set, KEYS[2] = user presence set, KEYS[3] = node users set
// ARGV[1] = user, ARGV[2] = node
const luaUserOnline = `
redis.call("SADD", KEYS[3], ARGV[1])
redis.call("SADD", KEYS[2], ARGV[2])
redis.call("SADD", KEYS[1], ARGV[1])
return 1
`

// Same keys as luaUserOnline. Returns 1 when the user left the last node.
const luaUserOffline = `
redis.call("SREM", KEYS[3], ARGV[1])
redis.call("SREM", KEYS[2], ARGV[2])
if redis.call("SCARD", KEYS[2]) == 0 then
  redis.call("SREM", KEYS[1], ARGV[1])
  return 1
end
return 0
`

// KEYS[1] = online set, KEYS[2] = node users set
// ARGV[1] = node, ARGV[2] = presence key prefix ("<prefix>:presence:")
// Returns the users that were attached to the node.
const luaResetNode = `
local users = redis.call("SMEMBERS", KEYS[2])
for _, u in ipairs(users) do
  local pk = ARGV[2] .. u
  redis.call("SREM", pk, ARGV[1])
  if redis.call("SCARD", pk) == 0 then
    redis.call("SREM", KEYS[1], u)
  end
end
redis.call("DEL", KEYS[2])
return users
`

// PresenceMirror keeps a cluster-wide copy of who is online in Redis. It is a
// chat.PresenceObserver; the in-process registry stays authoritative for
// delivery on this node.
type PresenceMirror struct {
	rdb    redis.UniversalClient
	node   string
	prefix string

	online  *redis.Script
	offline *redis.Script
	reset   *redis.Script
}

func NewPresenceMirror(rdb redis.UniversalClient, nodeID int64, prefix string) *PresenceMirror {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &PresenceMirror{
		rdb:     rdb,
		node:    strconv.FormatInt(nodeID, 10),
		prefix:  prefix,
		online:  redis.NewScript(luaUserOnline),
		offline: redis.NewScript(luaUserOffline),
		reset:   redis.NewScript(luaResetNode),
	}
}

func (m *PresenceMirror) onlineKey() string              { return m.prefix + ":online" }
func (m *PresenceMirror) presenceKey(user string) string { return m.prefix + ":presence:" + user }
func (m *PresenceMirror) nodeKey() string                { return m.prefix + ":node:" + m.node + ":users" }

func (m *PresenceMirror) UserOnline(ctx context.Context, id chat.UserID) error {
	u := id.String()
	keys := []string{m.onlineKey(), m.presenceKey(u), m.nodeKey()}
	if err := m.online.Run(ctx, m.rdb, keys, u, m.node).Err(); err != nil {
		return errs.WrapMsg(err, "presence online", "user", u, "node", m.node)
	}
	return nil
}

func (m *PresenceMirror) UserOffline(ctx context.Context, id chat.UserID) error {
	u := id.String()
	keys := []string{m.onlineKey(), m.presenceKey(u), m.nodeKey()}
	if err := m.offline.Run(ctx, m.rdb, keys, u, m.node).Err(); err != nil {
		return errs.WrapMsg(err, "presence offline", "user", u, "node", m.node)
	}
	return nil
}

// Reset drops whatever a previous run of this node left behind. Call it before
// accepting connections.
func (m *PresenceMirror) Reset(ctx context.Context) (int, error) {
	keys := []string{m.onlineKey(), m.nodeKey()}
	users, err := m.reset.Run(ctx, m.rdb, keys, m.node, m.prefix+":presence:").StringSlice()
	if err != nil {
		return 0, errs.WrapMsg(err, "presence reset", "node", m.node)
	}
	return len(users), nil
}

// OnlineUsers returns every user online on any node.
func (m *PresenceMirror) OnlineUsers(ctx context.Context) ([]chat.UserID, error) {
	raw, err := m.rdb.SMembers(ctx, m.onlineKey()).Result()
	if err != nil {
		return nil, errs.WrapMsg(err, "presence members")
	}
	return parseUserIDs(raw)
}

func parseUserIDs(raw []string) ([]chat.UserID, error) {
	out := make([]chat.UserID, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errs.ErrInternal.WrapMsg("malformed user id in presence set", "value", s)
		}
		out = append(out, chat.UserID(n))
	}
	return out, nil
}
