package game

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/matheo-lm/xs-arcade/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// progressVersion 存档格式版本，版本不符的存档被丢弃
const progressVersion = 1

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "platform"
)

// 默认档案名称与头像
const (
	DefaultProfileName   = "Guest"
	defaultProfileAvatar = "berry"
)

// MasteryBadges 小游戏ID到精通徽章的映射
//
// 一局获得 3 星时解锁
var MasteryBadges = map[string]string{
	config.FruitStackerGameID: config.FruitStackerMasterBadge,
}

// Profile 玩家档案
type Profile struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	AvatarID  string    `yaml:"avatarId"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// GameProgress 单个小游戏的进度
type GameProgress struct {
	HighScore    int       `yaml:"highScore"`
	Stars        int       `yaml:"stars"`
	Plays        int       `yaml:"plays"`
	LastPlayedAt time.Time `yaml:"lastPlayedAt"`
}

// BadgeProgress 徽章解锁状态
type BadgeProgress struct {
	Unlocked   bool      `yaml:"unlocked"`
	UnlockedAt time.Time `yaml:"unlockedAt"`
}

// ProgressData 进度存档结构
type ProgressData struct {
	Version         int                                 `yaml:"version"`
	Profiles        []Profile                           `yaml:"profiles"`
	ActiveProfileID string                              `yaml:"activeProfileId"`
	Progress        map[string]map[string]GameProgress  `yaml:"progress"` // 档案ID -> 小游戏ID -> 进度
	Badges          map[string]map[string]BadgeProgress `yaml:"badges"`   // 档案ID -> 徽章ID -> 状态
}

func defaultProgressData() *ProgressData {
	return &ProgressData{
		Version:  progressVersion,
		Profiles: []Profile{},
		Progress: make(map[string]map[string]GameProgress),
		Badges:   make(map[string]map[string]BadgeProgress),
	}
}

// ProgressManager 进度管理器
//
// 职责：
//   - 管理玩家档案与当前档案
//   - 记录每个小游戏的最高分、星级、游玩次数
//   - 解锁徽章
//
// 每次修改后立即持久化；gdataManager 为 nil 时只保存在内存中。
type ProgressManager struct {
	gdataManager *gdata.Manager
	data         *ProgressData
	now          func() time.Time
}

// NewProgressManager 创建进度管理器并加载已有存档
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		data:         defaultProgressData(),
		now:          time.Now,
	}

	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return pm
}

// Load 从 gdata 加载存档
func (pm *ProgressManager) Load() error {
	pm.data = defaultProgressData()
	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	raw, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var loaded ProgressData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("failed to parse progress: %w", err)
	}
	if loaded.Version != progressVersion {
		return fmt.Errorf("unsupported progress version %d", loaded.Version)
	}

	pm.data = sanitizeProgress(&loaded)
	log.Printf("[ProgressManager] Progress loaded: %d profiles", len(pm.data.Profiles))
	return nil
}

// sanitizeProgress 补齐缺失的集合，丢弃指向不存在档案的当前档案ID
func sanitizeProgress(data *ProgressData) *ProgressData {
	if data.Profiles == nil {
		data.Profiles = []Profile{}
	}
	if data.Progress == nil {
		data.Progress = make(map[string]map[string]GameProgress)
	}
	if data.Badges == nil {
		data.Badges = make(map[string]map[string]BadgeProgress)
	}
	if data.ActiveProfileID != "" && !hasProfile(data.Profiles, data.ActiveProfileID) {
		data.ActiveProfileID = ""
	}
	return data
}

// Save 持久化存档
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(pm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// persist 修改后保存，失败只记录日志
func (pm *ProgressManager) persist() {
	if err := pm.Save(); err != nil {
		log.Printf("[ProgressManager] Warning: %v", err)
	}
}

// ListProfiles 返回所有档案（副本）
func (pm *ProgressManager) ListProfiles() []Profile {
	profiles := make([]Profile, len(pm.data.Profiles))
	copy(profiles, pm.data.Profiles)
	return profiles
}

// CreateProfile 创建档案
//
// 空名称使用 "player"，空头像使用默认头像。
// 如果当前没有活动档案，新档案成为活动档案。
func (pm *ProgressManager) CreateProfile(name, avatarID string) Profile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "player"
	}
	avatarID = strings.TrimSpace(avatarID)
	if avatarID == "" {
		avatarID = defaultProfileAvatar
	}

	profile := Profile{
		ID:        pm.nextProfileID(),
		Name:      name,
		AvatarID:  avatarID,
		CreatedAt: pm.now(),
	}
	pm.data.Profiles = append(pm.data.Profiles, profile)
	if pm.data.ActiveProfileID == "" {
		pm.data.ActiveProfileID = profile.ID
	}
	pm.persist()

	log.Printf("[ProgressManager] Created profile %s (%s)", profile.ID, profile.Name)
	return profile
}

func (pm *ProgressManager) nextProfileID() string {
	for n := len(pm.data.Profiles) + 1; ; n++ {
		id := fmt.Sprintf("profile_%d", n)
		if !hasProfile(pm.data.Profiles, id) {
			return id
		}
	}
}

// SetActiveProfile 切换当前档案
//
// 返回：
//   - bool: 档案不存在时返回 false
func (pm *ProgressManager) SetActiveProfile(profileID string) bool {
	if !hasProfile(pm.data.Profiles, profileID) {
		return false
	}
	pm.data.ActiveProfileID = profileID
	pm.persist()
	return true
}

// ActiveProfileID 当前档案ID，没有时返回空字符串
func (pm *ProgressManager) ActiveProfileID() string {
	return pm.data.ActiveProfileID
}

// EnsureActiveProfile 确保存在活动档案，没有时创建访客档案
func (pm *ProgressManager) EnsureActiveProfile() string {
	if pm.data.ActiveProfileID != "" {
		return pm.data.ActiveProfileID
	}
	profile := pm.CreateProfile(DefaultProfileName, defaultProfileAvatar)
	pm.SetActiveProfile(profile.ID)
	return profile.ID
}

// GetGameProgress 返回档案在某个小游戏中的进度，没有记录时返回零值
func (pm *ProgressManager) GetGameProgress(profileID, gameID string) GameProgress {
	return pm.data.Progress[profileID][gameID]
}

// SaveGameProgress 合并并保存进度
//
// 最高分与星级取较大值，游玩次数直接覆盖，零值时间不覆盖已有时间。
func (pm *ProgressManager) SaveGameProgress(profileID, gameID string, update GameProgress) GameProgress {
	current := pm.data.Progress[profileID][gameID]
	merged := GameProgress{
		HighScore:    max(current.HighScore, update.HighScore),
		Stars:        max(current.Stars, update.Stars),
		Plays:        max(0, update.Plays),
		LastPlayedAt: current.LastPlayedAt,
	}
	if !update.LastPlayedAt.IsZero() {
		merged.LastPlayedAt = update.LastPlayedAt
	}

	if pm.data.Progress[profileID] == nil {
		pm.data.Progress[profileID] = make(map[string]GameProgress)
	}
	pm.data.Progress[profileID][gameID] = merged
	pm.persist()
	return merged
}

// RecordRun 记录当前档案的一局结果
//
// 参数：
//   - gameID: 小游戏ID（如 "fruit-stacker"）
//   - score: 本局得分
//   - stars: 本局星级（0~3）
//
// 返回：
//   - GameProgress: 合并后的进度
func (pm *ProgressManager) RecordRun(gameID string, score, stars int) GameProgress {
	profileID := pm.EnsureActiveProfile()
	current := pm.GetGameProgress(profileID, gameID)

	progress := pm.SaveGameProgress(profileID, gameID, GameProgress{
		HighScore:    max(current.HighScore, score),
		Stars:        stars,
		Plays:        current.Plays + 1,
		LastPlayedAt: pm.now(),
	})

	if badge, ok := MasteryBadges[gameID]; ok && stars >= 3 {
		pm.UnlockBadge(profileID, badge)
	}

	log.Printf("[ProgressManager] Run recorded: game=%s score=%d stars=%d best=%d plays=%d",
		gameID, score, stars, progress.HighScore, progress.Plays)
	return progress
}

// UnlockBadge 解锁徽章，已解锁的徽章保持原解锁时间
func (pm *ProgressManager) UnlockBadge(profileID, badgeID string) BadgeProgress {
	if pm.data.Badges[profileID] == nil {
		pm.data.Badges[profileID] = make(map[string]BadgeProgress)
	}
	if existing, ok := pm.data.Badges[profileID][badgeID]; ok && existing.Unlocked {
		return existing
	}

	unlocked := BadgeProgress{Unlocked: true, UnlockedAt: pm.now()}
	pm.data.Badges[profileID][badgeID] = unlocked
	pm.persist()

	log.Printf("[ProgressManager] Badge unlocked: %s (%s)", badgeID, profileID)
	return unlocked
}

// HasBadge 档案是否已解锁徽章
func (pm *ProgressManager) HasBadge(profileID, badgeID string) bool {
	return pm.data.Badges[profileID][badgeID].Unlocked
}

// ListBadges 返回档案的所有徽章（副本）
func (pm *ProgressManager) ListBadges(profileID string) map[string]BadgeProgress {
	badges := make(map[string]BadgeProgress, len(pm.data.Badges[profileID]))
	for id, badge := range pm.data.Badges[profileID] {
		badges[id] = badge
	}
	return badges
}

func hasProfile(profiles []Profile, id string) bool {
	for _, p := range profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}
