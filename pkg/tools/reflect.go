/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/modern-go/reflect2"
)

var durationType = reflect.TypeOf(time.Duration(0))

type FnObj struct {
	Fn   func(structField reflect.StructField, value reflect.Value, data interface{}) error
	Data interface{}
}

// DoTagFunc 对结构体指针的每个导出字段依次执行fn
func DoTagFunc(v interface{}, fnObjs []FnObj) error {
	if reflect2.IsNil(v) {
		return nil
	}

	vType := reflect2.TypeOf(v).Type1()
	if vType.Kind() != reflect.Ptr || vType.Elem().Kind() != reflect.Struct {
		// 只处理结构体指针
		return nil
	}

	indirect := reflect.ValueOf(v).Elem()
	for i := 0; i < indirect.NumField(); i++ {
		structField := vType.Elem().Field(i)
		if !structField.IsExported() {
			continue
		}
		for _, obj := range fnObjs {
			if err := obj.Fn(structField, indirect.Field(i), obj.Data); err != nil {
				return fmt.Errorf("field %s: %w", structField.Name, err)
			}
		}
	}

	return nil
}

// SetDefaultValueIfNil 字段为零值时使用default tag填充。
// bool需要声明为*bool，否则无法区分false与未配置。
func SetDefaultValueIfNil(structField reflect.StructField, vValue reflect.Value, _ interface{}) error {
	tag, hasTag := structField.Tag.Lookup("default")

	switch vValue.Kind() {
	case reflect.Struct:
		if vValue.Type() == reflect.TypeOf(time.Time{}) {
			return nil
		}
		return setStructDefault(vValue)
	case reflect.Ptr:
		elem := structField.Type.Elem()
		if elem.Kind() == reflect.Struct {
			if vValue.IsNil() {
				vValue.Set(reflect.New(elem))
			}
			return setStructDefault(vValue.Elem())
		}
		if !hasTag || !vValue.IsNil() {
			return nil
		}
		ptr := reflect.New(elem)
		if err := setValue(ptr.Elem(), tag); err != nil {
			return err
		}
		vValue.Set(ptr)
		return nil
	case reflect.Bool:
		if hasTag {
			return fmt.Errorf("bool can't use default tag, use *bool instead")
		}
		return nil
	}

	if !hasTag || !vValue.IsZero() {
		return nil
	}
	return setValue(vValue, tag)
}

func setStructDefault(vValue reflect.Value) error {
	t := vValue.Type()
	for i := 0; i < vValue.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		if err := SetDefaultValueIfNil(t.Field(i), vValue.Field(i), nil); err != nil {
			return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
		}
	}
	return nil
}

func setValue(vValue reflect.Value, value string) error {
	if vValue.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		vValue.SetInt(int64(d))
		return nil
	}

	switch vValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, vValue.Type().Bits())
		if err != nil {
			return err
		}
		vValue.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, vValue.Type().Bits())
		if err != nil {
			return err
		}
		vValue.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, vValue.Type().Bits())
		if err != nil {
			return err
		}
		vValue.SetFloat(v)
	case reflect.String:
		vValue.SetString(value)
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		vValue.SetBool(v)
	default:
		return fmt.Errorf("unsupported default value kind %s", vValue.Kind())
	}

	return nil
}
