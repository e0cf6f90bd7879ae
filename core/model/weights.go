package model

import (
	"encoding/json"
	"fmt"
)

// WeightsVersion はシリアライズ形式のバージョン
const WeightsVersion = "1"

// ModelWeights は学習済み線形モデルの係数を表す構造体（シリアライゼーション用）
//
// 切片は暗黙に扱わないため、定数列の係数も Features と Coefficients の
// 一要素として保存される。
type ModelWeights struct {
	// ModelType はモデルの種類（BMA, OLS 等）
	ModelType string `json:"model_type"`

	// Version はシリアライズ形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Features は列の名前
	Features []string `json:"features"`

	// Coefficients は列ごとの係数。BMA では事後平均
	Coefficients []float64 `json:"coefficients"`

	// InclusionProbabilities は列ごとの事後包含確率（BMA のみ）
	InclusionProbabilities []float64 `json:"inclusion_probabilities,omitempty"`

	// Hyperparameters は学習時の設定
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata は追加のメタデータ（探索の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}
	if mw.Version == "" {
		return fmt.Errorf("version is required")
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return fmt.Errorf("unfitted model should not have coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return fmt.Errorf("fitted model must have coefficients")
	}
	if len(mw.Features) != len(mw.Coefficients) {
		return fmt.Errorf("features and coefficients differ in length: %d != %d", len(mw.Features), len(mw.Coefficients))
	}
	if mw.InclusionProbabilities != nil && len(mw.InclusionProbabilities) != len(mw.Coefficients) {
		return fmt.Errorf("inclusion_probabilities and coefficients differ in length: %d != %d",
			len(mw.InclusionProbabilities), len(mw.Coefficients))
	}
	return nil
}
