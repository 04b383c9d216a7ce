package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	t.Parallel()
	l := NewMemoryLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "1.2.3.4|/openid/userinfo")
		if err != nil {
			t.Fatalf("Allow %d: %v", i, err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d debía pasar: %+v", i, res)
		}
	}

	res, err := l.Allow(ctx, "1.2.3.4|/openid/userinfo")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatalf("tercer hit debía bloquearse: %+v", res)
	}
	if res.RetryAfter <= 0 || res.RetryAfter > time.Minute {
		t.Fatalf("RetryAfter fuera de ventana: %v", res.RetryAfter)
	}
	if res.Remaining != 0 {
		t.Fatalf("Remaining: %d", res.Remaining)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "a"); !res.Allowed {
		t.Fatalf("primer hit de a debía pasar")
	}
	if res, _ := l.Allow(ctx, "a"); res.Allowed {
		t.Fatalf("segundo hit de a debía bloquearse")
	}
	if res, _ := l.Allow(ctx, "b"); !res.Allowed {
		t.Fatalf("la clave b no comparte ventana con a")
	}
}

func TestMemoryLimiter_WindowRollsOver(t *testing.T) {
	t.Parallel()
	const win = 50 * time.Millisecond
	l := NewMemoryLimiter(1, win)
	ctx := context.Background()

	// alinear al arranque de una ventana para que ambos hits caigan en la misma
	time.Sleep(time.Until(time.Now().Truncate(win).Add(win)))

	if res, _ := l.Allow(ctx, "x"); !res.Allowed {
		t.Fatalf("primer hit debía pasar")
	}
	if res, _ := l.Allow(ctx, "x"); res.Allowed {
		t.Fatalf("segundo hit debía bloquearse")
	}

	time.Sleep(win + 10*time.Millisecond)
	if res, _ := l.Allow(ctx, "x"); !res.Allowed {
		t.Fatalf("ventana nueva debía resetear el contador")
	}
}
