package util

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	return BufferReader{
		reader: reader,
	}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) (T, error) {
	var value T
	err := binary.Read(reader.reader, binary.LittleEndian, &value)
	return value, err
}

func ReadArray[T any](reader BufferReader) (Array[T], error) {
	var size int32
	if err := binary.Read(reader.reader, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid array size %v", size)
	}
	value := NewArray[T](int(size))
	if size == 0 {
		return value, nil
	}
	if err := binary.Read(reader.reader, binary.LittleEndian, []T(value)); err != nil {
		return nil, err
	}
	return value, nil
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) error {
	return binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) error {
	if err := binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length())); err != nil {
		return err
	}
	if value.Length() == 0 {
		return nil
	}
	return binary.Write(writer.buffer, binary.LittleEndian, []T(value))
}

func _WriteFile(data []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

func _ReadFile(file string) ([]byte, error) {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %v", file)
	}
	return os.ReadFile(file)
}

func WriteBytesToFile(data []byte, file string) error {
	return _WriteFile(data, file)
}

// Reads the whole file into a BufferReader.
func NewFileReader(file string) (BufferReader, error) {
	data, err := _ReadFile(file)
	if err != nil {
		return BufferReader{}, err
	}
	return NewBufferReader(data), nil
}

func WriteToFile[T any](value T, file string) error {
	writer := NewBufferWriter()
	if err := Write[T](writer, value); err != nil {
		return err
	}
	return _WriteFile(writer.Bytes(), file)
}

func WriteArrayToFile[T any](value Array[T], file string) error {
	writer := NewBufferWriter()
	if err := WriteArray[T](writer, value); err != nil {
		return err
	}
	return _WriteFile(writer.Bytes(), file)
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return _WriteFile(data, file)
}

func ReadFromFile[T any](file string) (T, error) {
	data, err := _ReadFile(file)
	if err != nil {
		var t T
		return t, err
	}
	return Read[T](NewBufferReader(data))
}

func ReadArrayFromFile[T any](file string) (Array[T], error) {
	data, err := _ReadFile(file)
	if err != nil {
		return nil, err
	}
	arr, err := ReadArray[T](NewBufferReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", file, err)
	}
	return arr, nil
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := _ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}
