package ecs

import (
	"testing"
)

// 测试实体类型定义
type testBody struct {
	X, Y float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager[*testBody]()
	id1 := em.CreateEntity(&testBody{})
	id2 := em.CreateEntity(&testBody{})

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.Len() != 2 {
		t.Errorf("Len: got %d, want 2", em.Len())
	}
}

func TestAtReturnsIDAndItem(t *testing.T) {
	em := NewEntityManager[*testBody]()
	em.CreateEntity(&testBody{X: 1})
	id := em.CreateEntity(&testBody{X: 100, Y: 200})

	gotID, body := em.At(1)
	if gotID != id {
		t.Errorf("At(1) id: got %d, want %d", gotID, id)
	}
	if body.X != 100 || body.Y != 200 {
		t.Errorf("Entity data mismatch, expected (100, 200), got (%f, %f)", body.X, body.Y)
	}
}

func TestDestroyIsDeferred(t *testing.T) {
	em := NewEntityManager[*testBody]()
	id := em.CreateEntity(&testBody{})
	em.CreateEntity(&testBody{X: 7})

	em.DestroyEntity(id)

	// 标记删除后实体仍然存在，直到 RemoveMarkedEntities
	if em.Len() != 2 {
		t.Errorf("Len before RemoveMarkedEntities: got %d, want 2", em.Len())
	}
	if gotID, _ := em.At(0); gotID != id {
		t.Errorf("marked entity should stay in place, got id %d at index 0", gotID)
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities: got %d, want 1", removed)
	}
	if em.Len() != 1 {
		t.Fatalf("Len after removal: got %d, want 1", em.Len())
	}
	if _, body := em.At(0); body.X != 7 {
		t.Errorf("remaining entity: got X=%v, want 7", body.X)
	}

	// 标记已清空，再次清理不删除任何实体
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("second RemoveMarkedEntities: got %d, want 0", removed)
	}
}

func TestRemoveMarkedEntitiesKeepsOrder(t *testing.T) {
	em := NewEntityManager[*testBody]()
	ids := make([]EntityID, 6)
	for i := range ids {
		ids[i] = em.CreateEntity(&testBody{X: float64(i)})
	}

	em.DestroyEntity(ids[0])
	em.DestroyEntity(ids[3])
	em.DestroyEntity(ids[5])
	em.RemoveMarkedEntities()

	want := []float64{1, 2, 4}
	got := em.Entities()
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i, body := range got {
		if body.X != want[i] {
			t.Errorf("entity %d: got X=%v, want %v", i, body.X, want[i])
		}
		id, _ := em.At(i)
		if id != ids[int(want[i])] {
			t.Errorf("entity %d: id %d does not follow its body", i, id)
		}
	}
}

func TestAppendDuringIteration(t *testing.T) {
	em := NewEntityManager[*testBody]()
	em.CreateEntity(&testBody{X: 1})

	// 遍历过程中追加的实体也会被访问到
	visited := 0
	for i := 0; i < em.Len(); i++ {
		_, body := em.At(i)
		visited++
		if body.X < 3 {
			em.CreateEntity(&testBody{X: body.X + 1})
		}
	}

	if visited != 3 {
		t.Errorf("expected to visit 3 entities, visited %d", visited)
	}
}

func TestClearDoesNotReuseIDs(t *testing.T) {
	em := NewEntityManager[*testBody]()
	em.CreateEntity(&testBody{})
	em.CreateEntity(&testBody{})
	em.DestroyEntity(2)

	em.Clear()

	if em.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", em.Len())
	}
	if id := em.CreateEntity(&testBody{}); id != 3 {
		t.Errorf("IDs should keep increasing after Clear, got %d", id)
	}
	// Clear 同时丢弃待删除标记
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("RemoveMarkedEntities after Clear: got %d, want 0", removed)
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	em := NewEntityManager[*testBody]()

	defer func() {
		if recover() == nil {
			t.Error("At(0) on empty manager should panic")
		}
	}()
	em.At(0)
}
