// Package errors はscibma全体のエラーハンドリングと警告システムを提供します。
// 構造化されたエラー型はcockroachdb/errorsでスタックトレースを付与し、
// 警告はzerologの構造化ログとして出力できます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("scibma-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ConfigurationWarning は設定値が不正で、既定値にフォールバックした場合の警告です。
// 例えば、事前確率ベクトルの長さが説明変数の数と一致しない場合など。
type ConfigurationWarning struct {
	Param    string
	Expected int
	Got      int
	Fallback string
}

func (w *ConfigurationWarning) Error() string {
	return fmt.Sprintf("invalid %s: expected length %d, got %d; using %s instead", w.Param, w.Expected, w.Got, w.Fallback)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConfigurationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("param", w.Param).
		Int("expected", w.Expected).
		Int("got", w.Got).
		Str("fallback", w.Fallback).
		Str("type", "ConfigurationWarning")
}

// NewConfigurationWarning は新しいConfigurationWarningを作成します。
func NewConfigurationWarning(param string, expected, got int, fallback string) *ConfigurationWarning {
	return &ConfigurationWarning{Param: param, Expected: expected, Got: got, Fallback: fallback}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `Summary` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scibma: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("scibma: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName(e.Axis), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName(e.Axis)).
		Str("type", "DimensionError")
}

func axisName(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scibma: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値や呼び出し順序が不適切な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scibma: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は回帰モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scibma: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("scibma: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	モデル平均化特有のエラー型
//
// ===========================================================================

// FitFailureError は候補モデル（説明変数の部分集合）の回帰が失敗した場合のエラーです。
// 特異な計画行列や完全な多重共線性などで発生します。
type FitFailureError struct {
	Model string // 候補モデルの列インデックス（例: "(0, 2)"）
	Err   error
}

func (e *FitFailureError) Error() string {
	return fmt.Sprintf("scibma: fit failed for model %s: %v", e.Model, e.Err)
}

func (e *FitFailureError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FitFailureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model", e.Model).
		AnErr("cause", e.Err).
		Str("type", "FitFailureError")
}

// NewFitFailureError は新しいFitFailureErrorを作成し、スタックトレースを付与します。
func NewFitFailureError(model string, err error) error {
	return errors.WithStack(&FitFailureError{Model: model, Err: err})
}

// EmptyEvidenceError は正規化時に尤度の総和がゼロの場合のエラーです。
// 一つもモデルが採択されなかったことを意味し、事後確率は定義できません。
type EmptyEvidenceError struct {
	Candidates int
	Accepted   int
}

func (e *EmptyEvidenceError) Error() string {
	return fmt.Sprintf("scibma: total likelihood is zero after evaluating %d candidate models (%d accepted); posterior is undefined",
		e.Candidates, e.Accepted)
}

// NewEmptyEvidenceError は新しいEmptyEvidenceErrorを作成し、スタックトレースを付与します。
func NewEmptyEvidenceError(candidates, accepted int) error {
	return errors.WithStack(&EmptyEvidenceError{Candidates: candidates, Accepted: accepted})
}

// ShapeMismatchError は予測データの形状が係数ベクトルとどちらの向きでも一致しない場合のエラーです。
type ShapeMismatchError struct {
	Op        string
	Features  int      // 係数ベクトルの長さ
	Attempted [][2]int // 試行した形状（行, 列）
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("scibma: %s: data shape does not match %d coefficients in either orientation (attempted %v)",
		e.Op, e.Features, e.Attempted)
}

// NewShapeMismatchError は新しいShapeMismatchErrorを作成し、スタックトレースを付与します。
func NewShapeMismatchError(op string, features int, attempted ...[2]int) error {
	return errors.WithStack(&ShapeMismatchError{Op: op, Features: features, Attempted: attempted})
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Inf などを検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "ols_coefficients", "bic"）
	Values    []float64 // 問題のある値
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("scibma: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")

	// ErrUnderdetermined は観測数がパラメータ数より少ない場合のエラーです。
	ErrUnderdetermined = New("fewer observations than parameters")

	// ErrAlreadyFitted は学習済みのモデルに再度Fitを呼んだ場合のエラーです。
	ErrAlreadyFitted = New("already fitted")
)
