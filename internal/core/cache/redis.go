package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache 为 nil 时所有方法直接回源，调用方不必判断是否启用了 redis
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "crud:",
	}
}

func (c *Cache) Key(name string) string {
	if c == nil {
		return name
	}
	return c.Prefix + name
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}

// GetOrLoad 未命中时回源并写缓存。写入前比对代数：回源期间发生过 Invalidate 则不写，
// 避免旧结果盖掉刚失效的键。
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	key = c.Key(key)
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	gen, err := c.generation(ctx, key)
	if err != nil {
		// redis 不可用：直接回源，不写缓存
		return load(ctx)
	}
	// 同一代的回源才合并；失效后的读者不会拿到失效前的结果
	v, err, _ := c.sf.Do(key+"@"+gen, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = setIfGen.Run(ctx, c.RDB, []string{key, genKey(key)}, b, gen, ttl.Milliseconds()).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 递增代数并删除缓存键，二者在同一个 MULTI 里
func (c *Cache) Invalidate(ctx context.Context, names ...string) error {
	if c == nil || len(names) == 0 {
		return nil
	}
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, n := range names {
			k := c.Key(n)
			p.Incr(ctx, genKey(k))
			p.Del(ctx, k)
		}
		return nil
	})
	return err
}

func genKey(key string) string { return key + ":gen" }

func (c *Cache) generation(ctx context.Context, key string) (string, error) {
	g, err := c.RDB.Get(ctx, genKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return g, err
}

// KEYS[1] 缓存键 KEYS[2] 代数键；ARGV: 值、读取时的代数、ttl 毫秒
var setIfGen = redis.NewScript(`
local g = redis.call('GET', KEYS[2])
if not g then g = '0' end
if g ~= ARGV[2] then return 0 end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)
