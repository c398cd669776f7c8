package mysql

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"ytchapters/internal/config"
	"ytchapters/internal/models"
)

// MySQLStore 結構
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore 建立資料庫連線
func NewMySQLStore(dbCfg config.DatabaseConfig) (*MySQLStore, error) {
	if dbCfg.Driver != "mysql" {
		return nil, fmt.Errorf("不支援的資料庫驅動程式: %s", dbCfg.Driver)
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("開啟資料庫連線失敗: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("無法連線到資料庫 (ping 失敗): %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	log.Println("資訊：成功連線到 MySQL 資料庫。")
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Close() error {
	if s.db != nil {
		log.Println("資訊：正在關閉 MySQL 資料庫連線...")
		return s.db.Close()
	}
	return nil
}

// wrapDBErr 把驅動程式的錯誤包裝成固定分類，協作者特定的錯誤型別
// 不得洩漏到核心邏輯。
func wrapDBErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, models.ErrCollaboratorUnavailable)
}

// FindSubtitleByNaturalKey 以自然鍵 (videoID, userID, language) 查詢字幕。
// 查無資料時回傳 (nil, nil)。
func (s *MySQLStore) FindSubtitleByNaturalKey(videoID string, userID string, language string) (*models.Subtitle, error) {
	query := `SELECT id, user_id, video_id, video_title, language, content, is_auto_generated, created_at, updated_at
		FROM subtitles WHERE video_id = ? AND user_id = ? AND language = ?;`
	return s.scanSubtitleRow(s.db.QueryRow(query, videoID, userID, language))
}

// GetSubtitleByID 查詢單一字幕，並以 userID 限定範圍。
// 不存在或屬於其他使用者時一律回傳 (nil, nil)，兩者不可區分。
func (s *MySQLStore) GetSubtitleByID(id string, userID string) (*models.Subtitle, error) {
	query := `SELECT id, user_id, video_id, video_title, language, content, is_auto_generated, created_at, updated_at
		FROM subtitles WHERE id = ? AND user_id = ?;`
	return s.scanSubtitleRow(s.db.QueryRow(query, id, userID))
}

func (s *MySQLStore) scanSubtitleRow(row *sql.Row) (*models.Subtitle, error) {
	var sub models.Subtitle
	var titleSQL sql.NullString
	err := row.Scan(&sub.ID, &sub.UserID, &sub.VideoID, &titleSQL, &sub.Language, &sub.Content, &sub.IsAutoGenerated, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBErr("查詢字幕失敗", err)
	}
	sub.VideoTitle = models.JsonNullString{NullString: titleSQL}
	return &sub, nil
}

// InsertSubtitle 插入一筆新的字幕記錄。
func (s *MySQLStore) InsertSubtitle(sub *models.Subtitle) error {
	if sub == nil || sub.ID == "" {
		return fmt.Errorf("無效的字幕記錄或 ID 為空")
	}
	query := `INSERT INTO subtitles (id, user_id, video_id, video_title, language, content, is_auto_generated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := sub.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err := s.db.Exec(query, sub.ID, sub.UserID, sub.VideoID, sub.VideoTitle.NullString, sub.Language, sub.Content, sub.IsAutoGenerated, createdAt, updatedAt)
	if err != nil {
		return wrapDBErr(fmt.Sprintf("插入字幕記錄失敗 (VideoID: %s)", sub.VideoID), err)
	}
	log.Printf("資訊：字幕記錄成功儲存到資料庫 (ID: %s, VideoID: %s, Language: %s)\n", sub.ID, sub.VideoID, sub.Language)
	return nil
}

// ListSubtitles 列出使用者的所有字幕（不含逐字稿內容），新的在前。
func (s *MySQLStore) ListSubtitles(userID string) ([]models.Subtitle, error) {
	query := `SELECT id, user_id, video_id, video_title, language, is_auto_generated, created_at, updated_at
		FROM subtitles WHERE user_id = ? ORDER BY created_at DESC;`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, wrapDBErr("查詢字幕列表失敗", err)
	}
	defer rows.Close()

	var subtitles []models.Subtitle
	for rows.Next() {
		var sub models.Subtitle
		var titleSQL sql.NullString
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.VideoID, &titleSQL, &sub.Language, &sub.IsAutoGenerated, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			log.Printf("錯誤：掃描字幕列表查詢結果行失敗: %v", err)
			continue
		}
		sub.VideoTitle = models.JsonNullString{NullString: titleSQL}
		subtitles = append(subtitles, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapDBErr("處理字幕列表查詢結果集時發生錯誤", err)
	}
	log.Printf("資訊：查詢到 %d 筆字幕記錄 (UserID: %s)。\n", len(subtitles), userID)
	return subtitles, nil
}

// GetAnalysisBySubtitleID 查詢某份字幕的分析記錄。查無資料時回傳 (nil, nil)。
func (s *MySQLStore) GetAnalysisBySubtitleID(subtitleID string) (*models.SubtitleAnalysis, error) {
	query := `SELECT id, subtitle_id, user_id, chapters, created_at, updated_at
		FROM subtitle_analyses WHERE subtitle_id = ?;`
	return s.scanAnalysisRow(s.db.QueryRow(query, subtitleID))
}

func (s *MySQLStore) scanAnalysisRow(row *sql.Row) (*models.SubtitleAnalysis, error) {
	var a models.SubtitleAnalysis
	var chaptersBytes []byte
	err := row.Scan(&a.ID, &a.SubtitleID, &a.UserID, &chaptersBytes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBErr("查詢分析記錄失敗", err)
	}
	a.Chapters = copyBytes(chaptersBytes)
	return &a, nil
}

// UpsertAnalysis 插入或更新字幕的分析記錄。
// subtitle_id 上的唯一索引保證每份字幕最多只有一筆分析：兩個並發
// 請求同時通過「檢查是否已存在」後，競爭在這次寫入解決——後寫的
// 章節列表獲勝，不會產生第二筆記錄。
func (s *MySQLStore) UpsertAnalysis(a *models.SubtitleAnalysis) error {
	if a == nil || a.SubtitleID == "" || a.ID == "" {
		return fmt.Errorf("無效的分析記錄或 SubtitleID/ID 為空")
	}
	query := `
		INSERT INTO subtitle_analyses (id, subtitle_id, user_id, chapters, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			chapters = VALUES(chapters), updated_at = VALUES(updated_at);`

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err := s.db.Exec(query, a.ID, a.SubtitleID, a.UserID, []byte(a.Chapters), createdAt, updatedAt)
	if err != nil {
		return wrapDBErr(fmt.Sprintf("儲存分析記錄失敗 (SubtitleID: %s)", a.SubtitleID), err)
	}
	log.Printf("資訊：分析記錄成功儲存到資料庫 (SubtitleID: %s)\n", a.SubtitleID)
	return nil
}

// GetAnalysisWithSubtitle 查詢單一分析記錄與其字幕元數據，以 userID 限定範圍。
// 查無資料時回傳 (nil, nil, nil)。
func (s *MySQLStore) GetAnalysisWithSubtitle(analysisID string, userID string) (*models.SubtitleAnalysis, *models.Subtitle, error) {
	query := `
		SELECT a.id, a.subtitle_id, a.user_id, a.chapters, a.created_at, a.updated_at,
			st.id, st.user_id, st.video_id, st.video_title, st.language, st.is_auto_generated, st.created_at, st.updated_at
		FROM subtitle_analyses a
		JOIN subtitles st ON st.id = a.subtitle_id
		WHERE a.id = ? AND a.user_id = ?;`
	row := s.db.QueryRow(query, analysisID, userID)

	var a models.SubtitleAnalysis
	var sub models.Subtitle
	var chaptersBytes []byte
	var titleSQL sql.NullString
	err := row.Scan(&a.ID, &a.SubtitleID, &a.UserID, &chaptersBytes, &a.CreatedAt, &a.UpdatedAt,
		&sub.ID, &sub.UserID, &sub.VideoID, &titleSQL, &sub.Language, &sub.IsAutoGenerated, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, wrapDBErr(fmt.Sprintf("查詢分析記錄失敗 (AnalysisID: %s)", analysisID), err)
	}
	a.Chapters = copyBytes(chaptersBytes)
	sub.VideoTitle = models.JsonNullString{NullString: titleSQL}
	return &a, &sub, nil
}

// ListAnalysesWithSubtitles 列出使用者的所有分析記錄及對應的字幕元數據，
// 新的在前。兩個切片等長且逐一對應。
func (s *MySQLStore) ListAnalysesWithSubtitles(userID string) ([]models.SubtitleAnalysis, []models.Subtitle, error) {
	query := `
		SELECT a.id, a.subtitle_id, a.user_id, a.chapters, a.created_at, a.updated_at,
			st.id, st.user_id, st.video_id, st.video_title, st.language, st.is_auto_generated, st.created_at, st.updated_at
		FROM subtitle_analyses a
		JOIN subtitles st ON st.id = a.subtitle_id
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC;`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, nil, wrapDBErr("查詢分析列表失敗", err)
	}
	defer rows.Close()

	var analyses []models.SubtitleAnalysis
	var subtitles []models.Subtitle
	for rows.Next() {
		var a models.SubtitleAnalysis
		var sub models.Subtitle
		var chaptersBytes []byte
		var titleSQL sql.NullString
		if err := rows.Scan(&a.ID, &a.SubtitleID, &a.UserID, &chaptersBytes, &a.CreatedAt, &a.UpdatedAt,
			&sub.ID, &sub.UserID, &sub.VideoID, &titleSQL, &sub.Language, &sub.IsAutoGenerated, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			log.Printf("錯誤：掃描分析列表查詢結果行失敗: %v", err)
			continue
		}
		a.Chapters = copyBytes(chaptersBytes)
		sub.VideoTitle = models.JsonNullString{NullString: titleSQL}
		analyses = append(analyses, a)
		subtitles = append(subtitles, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, wrapDBErr("處理分析列表查詢結果集時發生錯誤", err)
	}
	log.Printf("資訊：查詢到 %d 筆分析記錄 (UserID: %s)。\n", len(analyses), userID)
	return analyses, subtitles, nil
}

func copyBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
