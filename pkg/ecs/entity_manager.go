// Package ecs 提供有序、确定性的实体存储
//
// 与按类型映射组件的通用 ECS 不同，这里每个 EntityManager 只存放一种实体，
// 并按插入顺序保存在切片中：遍历顺序固定，模拟结果才能逐位复现。
package ecs

import "fmt"

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntityID 保留的无效ID
const InvalidEntityID EntityID = 0

// EntityManager 管理同一类型的全部实体
//
// 单线程使用：只有当前 tick 会修改，渲染层只在两次 tick 之间读取。
type EntityManager[T any] struct {
	nextID uint64
	ids    []EntityID
	items  []T
	// 待删除的实体ID集合
	entitiesToDestroy map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager[T any]() *EntityManager[T] {
	return &EntityManager[T]{
		nextID:            uint64(InvalidEntityID) + 1, // ID从1开始,0保留为无效ID
		ids:               make([]EntityID, 0),
		items:             make([]T, 0),
		entitiesToDestroy: make(map[EntityID]struct{}),
	}
}

// CreateEntity 追加实体并返回唯一ID
//
// ID 在进程内单调递增，Clear 之后也不会复用
func (em *EntityManager[T]) CreateEntity(item T) EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.ids = append(em.ids, id)
	em.items = append(em.items, item)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager[T]) DestroyEntity(id EntityID) {
	em.entitiesToDestroy[id] = struct{}{}
}

// RemoveMarkedEntities 清理所有标记删除的实体，保持其余实体的相对顺序
//
// 返回：
//   - int: 实际删除的实体数量
func (em *EntityManager[T]) RemoveMarkedEntities() int {
	if len(em.entitiesToDestroy) == 0 {
		return 0
	}

	kept := 0
	for i, id := range em.ids {
		if _, marked := em.entitiesToDestroy[id]; marked {
			continue
		}
		em.ids[kept] = id
		em.items[kept] = em.items[i]
		kept++
	}

	removed := len(em.ids) - kept

	// 释放尾部引用，避免已删除实体无法被回收
	var zero T
	for i := kept; i < len(em.items); i++ {
		em.items[i] = zero
	}
	em.ids = em.ids[:kept]
	em.items = em.items[:kept]
	clear(em.entitiesToDestroy)

	return removed
}

// Len 返回当前实体数量（包括已标记但尚未清理的实体）
func (em *EntityManager[T]) Len() int {
	return len(em.items)
}

// At 按插入顺序返回第 i 个实体
//
// 越界属于编程错误，直接 panic
func (em *EntityManager[T]) At(i int) (EntityID, T) {
	if i < 0 || i >= len(em.items) {
		panic(fmt.Sprintf("ecs: index %d out of range [0, %d)", i, len(em.items)))
	}
	return em.ids[i], em.items[i]
}

// Entities 返回按插入顺序排列的实体切片
//
// 返回的是内部切片，调用方只能读取，下一次修改后失效
func (em *EntityManager[T]) Entities() []T {
	return em.items
}

// Clear 删除所有实体
func (em *EntityManager[T]) Clear() {
	var zero T
	for i := range em.items {
		em.items[i] = zero
	}
	em.ids = em.ids[:0]
	em.items = em.items[:0]
	clear(em.entitiesToDestroy)
}
