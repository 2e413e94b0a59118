package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAnalyze           = "analyze"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyHistory           = "history"
	KeyCompress          = "compress"
	KeyDownloadDirectory = "download_directory"
	KeyOutputFormat      = "output_format"
	KeyAudioQuality      = "audio_quality"
	KeyRunSelfCheck      = "run_self_check"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyEnterURL          = "enter_url"
	KeyPreparingTools    = "preparing_tools"
	KeyToolsReady        = "tools_ready"
	KeyToolsFailed       = "tools_failed"
	KeyAnalyzing         = "analyzing"
	KeyAnalysisFailed    = "analysis_failed"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeySelectAll         = "select_all"
	KeyNoSelection       = "no_selection"
	KeyDownloading       = "downloading"
	KeyConverting        = "converting"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadFailed    = "download_failed"
	KeyDownloadStopped   = "download_stopped"
	KeyQueueFinished     = "queue_finished"
	KeyHistoryEmpty      = "history_empty"
	KeyCompressDone      = "compress_done"
	KeyCompressFailed    = "compress_failed"
	KeyCompressing       = "compressing"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ko": "한국어",
		"ja": "日本語",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeyAnalyze:           "Analyze",
		KeyDownload:          "Download",
		KeyStop:              "Stop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyHistory:           "History",
		KeyCompress:          "Compress Video...",
		KeyDownloadDirectory: "Download Directory",
		KeyOutputFormat:      "Output Format",
		KeyAudioQuality:      "MP3 Bitrate",
		KeyRunSelfCheck:      "Check tools on startup",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyEnterURL:          "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyPreparingTools:    "Preparing tools...",
		KeyToolsReady:        "Ready",
		KeyToolsFailed:       "Tool setup failed",
		KeyAnalyzing:         "Analyzing URL...",
		KeyAnalysisFailed:    "Could not analyze URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyInvalidURL:        "Invalid URL",
		KeySelectAll:         "Select all",
		KeyNoSelection:       "Nothing selected",
		KeyDownloading:       "Downloading",
		KeyConverting:        "Converting...",
		KeyDownloadCompleted: "Download completed",
		KeyDownloadFailed:    "Download failed",
		KeyDownloadStopped:   "Download stopped",
		KeyQueueFinished:     "All downloads finished",
		KeyHistoryEmpty:      "No downloads yet",
		KeyCompressDone:      "Compression finished",
		KeyCompressFailed:    "Compression failed",
		KeyCompressing:       "Compressing",
	}

	// Korean texts
	l.texts["ko"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeyAnalyze:           "분석",
		KeyDownload:          "다운로드",
		KeyStop:              "중지",
		KeySettings:          "설정",
		KeyFile:              "파일",
		KeyLanguage:          "언어",
		KeyHistory:           "기록",
		KeyCompress:          "동영상 압축...",
		KeyDownloadDirectory: "다운로드 폴더",
		KeyOutputFormat:      "출력 형식",
		KeyAudioQuality:      "MP3 비트레이트",
		KeyRunSelfCheck:      "시작 시 도구 확인",
		KeySave:              "저장",
		KeyCancel:            "취소",
		KeyEnterURL:          "YouTube URL 입력 (https://youtube.com/watch?v=...)",
		KeyPreparingTools:    "도구 준비 중...",
		KeyToolsReady:        "준비 완료",
		KeyToolsFailed:       "도구 설치 실패",
		KeyAnalyzing:         "URL 분석 중...",
		KeyAnalysisFailed:    "URL을 분석할 수 없습니다",
		KeyPleaseEnterURL:    "URL을 입력하세요",
		KeyInvalidURL:        "잘못된 URL",
		KeySelectAll:         "전체 선택",
		KeyNoSelection:       "선택된 항목이 없습니다",
		KeyDownloading:       "다운로드 중",
		KeyConverting:        "변환 중...",
		KeyDownloadCompleted: "다운로드 완료",
		KeyDownloadFailed:    "다운로드 실패",
		KeyDownloadStopped:   "다운로드 중지됨",
		KeyQueueFinished:     "모든 다운로드 완료",
		KeyHistoryEmpty:      "다운로드 기록이 없습니다",
		KeyCompressDone:      "압축 완료",
		KeyCompressFailed:    "압축 실패",
		KeyCompressing:       "압축 중",
	}

	// Japanese texts
	l.texts["ja"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeyAnalyze:           "解析",
		KeyDownload:          "ダウンロード",
		KeyStop:              "停止",
		KeySettings:          "設定",
		KeyFile:              "ファイル",
		KeyLanguage:          "言語",
		KeyHistory:           "履歴",
		KeyCompress:          "動画を圧縮...",
		KeyDownloadDirectory: "保存先フォルダ",
		KeyOutputFormat:      "出力形式",
		KeyAudioQuality:      "MP3ビットレート",
		KeyRunSelfCheck:      "起動時にツールを確認",
		KeySave:              "保存",
		KeyCancel:            "キャンセル",
		KeyEnterURL:          "YouTube URLを入力 (https://youtube.com/watch?v=...)",
		KeyPreparingTools:    "ツールを準備中...",
		KeyToolsReady:        "準備完了",
		KeyToolsFailed:       "ツールの設定に失敗しました",
		KeyAnalyzing:         "URLを解析中...",
		KeyAnalysisFailed:    "URLを解析できませんでした",
		KeyPleaseEnterURL:    "URLを入力してください",
		KeyInvalidURL:        "無効なURL",
		KeySelectAll:         "すべて選択",
		KeyNoSelection:       "何も選択されていません",
		KeyDownloading:       "ダウンロード中",
		KeyConverting:        "変換中...",
		KeyDownloadCompleted: "ダウンロード完了",
		KeyDownloadFailed:    "ダウンロード失敗",
		KeyDownloadStopped:   "ダウンロード停止",
		KeyQueueFinished:     "すべてのダウンロードが完了しました",
		KeyHistoryEmpty:      "ダウンロード履歴はありません",
		KeyCompressDone:      "圧縮完了",
		KeyCompressFailed:    "圧縮失敗",
		KeyCompressing:       "圧縮中",
	}
}
