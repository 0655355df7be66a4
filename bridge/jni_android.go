//go:build android

package bridge

/*
#include <jni.h>
#include <stdlib.h>

static jint jni_GetEnv(JavaVM *vm, JNIEnv **env, jint version) {
	return (*vm)->GetEnv(vm, (void **)env, version);
}

static jint jni_AttachCurrentThread(JavaVM *vm, JNIEnv **p_env, void *thr_args) {
	return (*vm)->AttachCurrentThread(vm, p_env, thr_args);
}

static jint jni_DetachCurrentThread(JavaVM *vm) {
	return (*vm)->DetachCurrentThread(vm);
}

static jclass jni_GetObjectClass(JNIEnv *env, jobject obj) {
	return (*env)->GetObjectClass(env, obj);
}

static jmethodID jni_GetMethodID(JNIEnv *env, jclass clazz, const char *name, const char *sig) {
	return (*env)->GetMethodID(env, clazz, name, sig);
}

static void jni_CallVoidMethodA(JNIEnv *env, jobject obj, jmethodID methodID, const jvalue *args) {
	(*env)->CallVoidMethodA(env, obj, methodID, args);
}

static jobject jni_CallObjectMethodA(JNIEnv *env, jobject obj, jmethodID method, jvalue *args) {
	return (*env)->CallObjectMethodA(env, obj, method, args);
}

static jstring jni_NewString(JNIEnv *env, const jchar *unicodeChars, jsize len) {
	return (*env)->NewString(env, unicodeChars, len);
}

static jsize jni_GetStringLength(JNIEnv *env, jstring str) {
	return (*env)->GetStringLength(env, str);
}

static const jchar *jni_GetStringChars(JNIEnv *env, jstring str) {
	return (*env)->GetStringChars(env, str, NULL);
}

static void jni_ReleaseStringChars(JNIEnv *env, jstring str, const jchar *chars) {
	(*env)->ReleaseStringChars(env, str, chars);
}

static void jni_DeleteLocalRef(JNIEnv *env, jobject obj) {
	(*env)->DeleteLocalRef(env, obj);
}

static jthrowable jni_ExceptionOccurred(JNIEnv *env) {
	return (*env)->ExceptionOccurred(env);
}

static void jni_ExceptionClear(JNIEnv *env) {
	(*env)->ExceptionClear(env);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unicode/utf16"
	"unsafe"
)

// JNICaller performs activity calls through JNI, attaching the calling
// thread to the VM for the duration of each call.
type JNICaller struct{}

// NewJNICaller returns the JNI-backed Caller.
func NewJNICaller() *JNICaller { return &JNICaller{} }

func (*JNICaller) CallVoid(ctx Context, method string) error {
	return runInJVM(ctx, func(env *C.JNIEnv, obj C.jobject) error {
		m, err := methodID(env, obj, method, "()V")
		if err != nil {
			return err
		}
		C.jni_CallVoidMethodA(env, obj, m, nil)
		return exception(env)
	})
}

func (*JNICaller) CallString(ctx Context, method string) (string, error) {
	var out string
	err := runInJVM(ctx, func(env *C.JNIEnv, obj C.jobject) error {
		m, err := methodID(env, obj, method, "()Ljava/lang/String;")
		if err != nil {
			return err
		}
		res := C.jni_CallObjectMethodA(env, obj, m, nil)
		if err := exception(env); err != nil {
			return err
		}
		if res == 0 {
			return fmt.Errorf("bridge: %s returned null", method)
		}
		defer C.jni_DeleteLocalRef(env, res)
		out = goString(env, C.jstring(res))
		return nil
	})
	return out, err
}

func (*JNICaller) CallVoidString(ctx Context, method, arg string) error {
	return runInJVM(ctx, func(env *C.JNIEnv, obj C.jobject) error {
		m, err := methodID(env, obj, method, "(Ljava/lang/String;)V")
		if err != nil {
			return err
		}
		s := javaString(env, arg)
		if s != 0 {
			defer C.jni_DeleteLocalRef(env, C.jobject(s))
		}
		args := [1]C.jvalue{}
		*(*C.jstring)(unsafe.Pointer(&args[0])) = s
		C.jni_CallVoidMethodA(env, obj, m, &args[0])
		return exception(env)
	})
}

// runInJVM runs f with a JNIEnv for the current thread, attaching it to
// the VM first if needed.
func runInJVM(ctx Context, f func(env *C.JNIEnv, obj C.jobject) error) error {
	if !ctx.Valid() {
		return ErrNoContext
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	vm := (*C.JavaVM)(unsafe.Pointer(ctx.VM))
	var env *C.JNIEnv
	if res := C.jni_GetEnv(vm, &env, C.JNI_VERSION_1_6); res != C.JNI_OK {
		if res != C.JNI_EDETACHED {
			return fmt.Errorf("bridge: JNI GetEnv failed with error %d", res)
		}
		if C.jni_AttachCurrentThread(vm, &env, nil) != C.JNI_OK {
			return errors.New("bridge: AttachCurrentThread failed")
		}
		defer C.jni_DetachCurrentThread(vm)
	}
	return f(env, C.jobject(ctx.Activity))
}

func methodID(env *C.JNIEnv, obj C.jobject, name, sig string) (C.jmethodID, error) {
	cls := C.jni_GetObjectClass(env, obj)
	defer C.jni_DeleteLocalRef(env, C.jobject(cls))
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	csig := C.CString(sig)
	defer C.free(unsafe.Pointer(csig))
	m := C.jni_GetMethodID(env, cls, cname, csig)
	if err := exception(env); err != nil {
		return nil, fmt.Errorf("bridge: method %s%s: %w", name, sig, err)
	}
	if m == nil {
		return nil, fmt.Errorf("bridge: method %s%s not found", name, sig)
	}
	return m, nil
}

// exception clears and returns the pending Java exception, if any.
func exception(env *C.JNIEnv) error {
	thr := C.jni_ExceptionOccurred(env)
	if thr == 0 {
		return nil
	}
	C.jni_ExceptionClear(env)
	C.jni_DeleteLocalRef(env, C.jobject(thr))
	return errors.New("bridge: java exception thrown")
}

func javaString(env *C.JNIEnv, s string) C.jstring {
	if s == "" {
		return C.jni_NewString(env, nil, 0)
	}
	chars := utf16.Encode([]rune(s))
	return C.jni_NewString(env, (*C.jchar)(unsafe.Pointer(&chars[0])), C.jsize(len(chars)))
}

func goString(env *C.JNIEnv, s C.jstring) string {
	n := C.jni_GetStringLength(env, s)
	chars := C.jni_GetStringChars(env, s)
	if chars == nil {
		return ""
	}
	defer C.jni_ReleaseStringChars(env, s, chars)
	u := unsafe.Slice((*uint16)(unsafe.Pointer(chars)), int(n))
	return string(utf16.Decode(u))
}
