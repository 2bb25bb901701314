package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-trip/trip"
	. "github.com/ttpr0/go-trip/util"
)

// Maximum accepted request body size in bytes.
const MAX_BODY_SIZE = 10 << 20

var VALIDATE = validator.New()

// Pool running all request handlers, handlers run on the calling goroutine if nil.
var WORKER_POOL *ants.Pool

type none struct{}

func ReadRequestBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(io.LimitReader(r.Body, MAX_BODY_SIZE))
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

// Checks validate struct tags of request structs.
func ValidateRequest[T any](req T) error {
	if reflect.TypeOf(req).Kind() != reflect.Struct {
		return nil
	}
	if err := VALIDATE.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", trip.ErrInvalidValue, err)
	}
	return nil
}

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func InternalError[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusInternalServerError,
	}
}

// Runs the handler on the worker pool and waits for its result.
//
// Panics are turned into internal errors.
func _RunHandler(handler func() Result) Result {
	if WORKER_POOL == nil {
		return _CallHandler(handler)
	}
	done := make(chan Result, 1)
	err := WORKER_POOL.Submit(func() {
		done <- _CallHandler(handler)
	})
	if err != nil {
		return Result{
			result: ErrorBody{Code: "Unavailable", Message: err.Error()},
			status: http.StatusServiceUnavailable,
		}
	}
	return <-done
}

func _CallHandler(handler func() Result) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error(fmt.Sprintf("handler panicked: %v", p))
			res = InternalError(ErrorBody{Code: "InternalError", Message: fmt.Sprint(p)})
		}
	}()
	return handler()
}

func _FinishRequest(w http.ResponseWriter, logger *slog.Logger, method, path string, res Result, start time.Time) {
	if res.status != http.StatusOK {
		logger.Error(fmt.Sprintf("failed %v %v: %v", method, path, res.result))
		WriteResponse(w, NewErrorResponse(path, res.result), res.status)
	} else {
		logger.Info(fmt.Sprintf("successfully finished %v %v", method, path))
		WriteResponse(w, res.result, res.status)
	}
	RequestsTotal.WithLabelValues(path, strconv.Itoa(res.status)).Inc()
	RequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

func MapPost[F any](app *http.ServeMux, path string, handler func(F) Result) {
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With("request_id", uuid.NewString())
		logger.Info("POST " + path)
		if r.Method != http.MethodPost {
			res := Result{result: "method not allowed", status: http.StatusMethodNotAllowed}
			_FinishRequest(w, logger, "POST", path, res, start)
			return
		}
		body, err := ReadRequestBody[F](r)
		if err != nil {
			res := BadRequest(ErrorBody{Code: "InvalidInput", Message: err.Error()})
			_FinishRequest(w, logger, "POST", path, res, start)
			return
		}
		if err := ValidateRequest(body); err != nil {
			_FinishRequest(w, logger, "POST", path, ErrorResult(err), start)
			return
		}
		res := _RunHandler(func() Result {
			return handler(body)
		})
		_FinishRequest(w, logger, "POST", path, res, start)
	})
}

func MapGet[F any](app *http.ServeMux, path string, handler func(F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[Triple[int, string, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, tag, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, tag, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, tag, reflect.Float64))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(MakeTriple(i, tag, reflect.Uint))
		case reflect.String:
			fields.Add(MakeTriple(i, tag, reflect.String))
		}
	}
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With("request_id", uuid.NewString())
		logger.Info("GET " + path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			index := field.A
			name := field.B
			typ := field.C
			value := query.Get(name)
			if value == "" {
				continue
			}
			f := t.Field(index)
			var err error
			switch typ {
			case reflect.Bool:
				var v bool
				v, err = strconv.ParseBool(value)
				f.SetBool(v)
			case reflect.Int:
				var v int64
				v, err = strconv.ParseInt(value, 10, 64)
				f.SetInt(v)
			case reflect.Uint:
				var v uint64
				v, err = strconv.ParseUint(value, 10, 64)
				f.SetUint(v)
			case reflect.Float64:
				var v float64
				v, err = strconv.ParseFloat(value, 64)
				f.SetFloat(v)
			case reflect.String:
				f.SetString(value)
			}
			if err != nil {
				res := BadRequest(ErrorBody{Code: "InvalidInput", Message: fmt.Sprintf("invalid parameter %v: %v", name, err)})
				_FinishRequest(w, logger, "GET", path, res, start)
				return
			}
		}
		value := t.Interface().(F)
		if err := ValidateRequest(value); err != nil {
			_FinishRequest(w, logger, "GET", path, ErrorResult(err), start)
			return
		}
		res := _RunHandler(func() Result {
			return handler(value)
		})
		_FinishRequest(w, logger, "GET", path, res, start)
	})
}
