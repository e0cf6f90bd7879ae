package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

// SaveWeights は係数をJSONファイルに保存する
//
// 使用例:
//
//	w, err := estimator.Weights()
//	err = model.SaveWeights(w, "posterior.json")
func SaveWeights(mw *ModelWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := WriteWeights(mw, file); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// LoadWeights はJSONファイルから係数を読み込む
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return ReadWeights(file)
}

// WriteWeights は検証済みの係数をio.Writerに書き出す
func WriteWeights(mw *ModelWeights, w io.Writer) error {
	if err := mw.Validate(); err != nil {
		return errors.Wrap(err, "invalid weights")
	}
	data, err := mw.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode weights")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write weights")
	}
	return nil
}

// ReadWeights はio.Readerから係数を読み込み、検証する
func ReadWeights(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read weights")
	}
	mw := &ModelWeights{}
	if err := mw.FromJSON(data); err != nil {
		return nil, errors.Wrap(err, "failed to decode weights")
	}
	if err := mw.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid weights")
	}
	return mw, nil
}
